package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/authz"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
)

// ProductUseCase CRUD des produits, scopé par entreprise et contrôlé par la
// politique de permissions. Le stock évolue via les ventes, pas ici.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// productNameKey normalise un nom de produit pour l'unicité insensible à la
// casse ("Café" et "café" sont le même produit). Repliage Unicode complet,
// pas un simple ToLower ASCII.
func productNameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Create crée un produit. Le pré-contrôle de doublon est indicatif : la
// contrainte unique en base tranche les créations concurrentes et le
// repository traduit la violation en ErrDuplicate.
func (uc *ProductUseCase) Create(actor authz.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !authz.CanWriteProduct(actor) {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	key := productNameKey(in.Name)
	existing, _ := uc.repo.GetByCompanyAndNameKey(actor.CompanyID, key)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		Name:        in.Name,
		NameKey:     key,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID retourne un produit de l'entreprise de l'appelant ; un ID d'une
// autre entreprise se comporte comme introuvable.
func (uc *ProductUseCase) GetByID(actor authz.Identity, productID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !authz.CanReadTenantResource(actor, product.CompanyID) {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update modifie un produit. Le même ensemble de rôles que Create s'applique.
func (uc *ProductUseCase) Update(actor authz.Identity, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !authz.CanWriteProduct(actor) {
		return nil, domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !authz.CanReadTenantResource(actor, product.CompanyID) {
		return nil, nil
	}
	if in.Name != nil && *in.Name != product.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		key := productNameKey(*in.Name)
		if key != product.NameKey {
			other, _ := uc.repo.GetByCompanyAndNameKey(actor.CompanyID, key)
			if other != nil && other.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
		}
		product.Name = *in.Name
		product.NameKey = key
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List liste les produits de l'entreprise de l'appelant avec pagination.
func (uc *ProductUseCase) List(actor authz.Identity, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(actor.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete supprime un produit de l'entreprise de l'appelant.
func (uc *ProductUseCase) Delete(actor authz.Identity, productID string) error {
	if !authz.CanWriteProduct(actor) {
		return domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !authz.CanReadTenantResource(actor, product.CompanyID) {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(productID)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
