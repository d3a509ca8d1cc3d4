package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/authz"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
)

// SaleTxRunner exécute un callback dans une transaction avec des repos
// produits/ventes attachés à la tx. Implémenté par postgres.TxRunner.
type SaleTxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptGenerator produit le ticket de caisse d'une vente.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, lines []*entity.SaleLine, company *entity.Company) ([]byte, error)
}

// SaleUseCase encaissement au point de vente et consultation des ventes.
type SaleUseCase struct {
	tx          SaleTxRunner
	saleRepo    repository.SaleRepository
	companyRepo repository.CompanyRepository
	receipts    ReceiptGenerator
}

// NewSaleUseCase construit le cas d'usage.
func NewSaleUseCase(tx SaleTxRunner, saleRepo repository.SaleRepository, companyRepo repository.CompanyRepository, receipts ReceiptGenerator) *SaleUseCase {
	return &SaleUseCase{tx: tx, saleRepo: saleRepo, companyRepo: companyRepo, receipts: receipts}
}

// Checkout encaisse une vente : vérifie l'accès caisse, charge chaque produit
// dans le tenant de l'acteur, décrémente le stock et persiste la vente dans
// une seule transaction. Stock insuffisant ou produit hors tenant annulent
// tout, aucune vente partielle.
func (uc *SaleUseCase) Checkout(ctx context.Context, actor authz.Identity, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if !authz.CanAccessPOS(actor) {
		return nil, domain.ErrForbidden
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.Quantity <= 0 || l.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		CashierID: actor.ID,
		Total:     decimal.Zero,
		CreatedAt: now,
	}
	var lines []*entity.SaleLine

	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		for _, l := range in.Lines {
			product, err := productRepo.GetByID(l.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !authz.CanReadTenantResource(actor, product.CompanyID) {
				return domain.ErrNotFound
			}
			if err := productRepo.DecrementStock(product.ID, l.Quantity); err != nil {
				return err
			}
			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			lines = append(lines, &entity.SaleLine{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    l.Quantity,
				UnitPrice:   product.Price,
				LineTotal:   lineTotal,
			})
			sale.Total = sale.Total.Add(lineTotal)
		}
		return saleRepo.Create(sale, lines)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines), nil
}

// GetByID retourne une vente de l'entreprise de l'acteur, lignes incluses.
func (uc *SaleUseCase) GetByID(actor authz.Identity, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || !authz.CanReadTenantResource(actor, sale.CompanyID) {
		return nil, nil
	}
	lines, err := uc.saleRepo.GetLines(saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines), nil
}

// List liste les ventes de l'entreprise de l'acteur.
func (uc *SaleUseCase) List(actor authz.Identity, limit, offset int) (*dto.SaleListResponse, error) {
	if !authz.CanAccessPOS(actor) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.saleRepo.ListByCompany(actor.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Receipt génère le ticket de caisse PDF d'une vente.
func (uc *SaleUseCase) Receipt(ctx context.Context, actor authz.Identity, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || !authz.CanReadTenantResource(actor, sale.CompanyID) {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.GetLines(saleID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(sale.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceipt(ctx, sale, lines, company)
}

func toSaleResponse(s *entity.Sale, lines []*entity.SaleLine) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		CashierID: s.CashierID,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return out
}
