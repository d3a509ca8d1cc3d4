package repository

import "github.com/malikfall/gestock-api/internal/domain/entity"

// ProductRepository port de persistance pour les produits.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByCompanyAndNameKey cherche un produit par nom normalisé (pré-contrôle
	// d'unicité ; la contrainte unique en base reste l'arbitre final).
	GetByCompanyAndNameKey(companyID, nameKey string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error

	// DecrementStock retire quantity unités si le stock est suffisant.
	// Retourne domain.ErrInsufficientStock sinon, sans modifier la ligne.
	DecrementStock(productID string, quantity int) error
}
