package repository

import "github.com/malikfall/gestock-api/internal/domain/entity"

// SaleRepository port de persistance pour les ventes du point de vente.
type SaleRepository interface {
	// Create persiste la vente et ses lignes (à appeler dans la transaction
	// qui décrémente le stock).
	Create(sale *entity.Sale, lines []*entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	GetLines(saleID string) ([]*entity.SaleLine, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
}
