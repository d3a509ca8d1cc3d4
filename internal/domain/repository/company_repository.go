package repository

import "github.com/malikfall/gestock-api/internal/domain/entity"

// CompanyRepository port de persistance pour les entreprises (tenants).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}
