package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implémentation du port SaleRepository sur PostgreSQL
// (utilisable avec pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construit l'adaptateur de persistance des ventes.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste une vente et ses lignes. Appelé dans la transaction
// d'encaissement, jamais seul.
func (r *SaleRepo) Create(sale *entity.Sale, lines []*entity.SaleLine) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sales (id, company_id, cashier_id, total, created_at) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, sale.CompanyID, sale.CashierID, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO sale_lines (id, sale_id, product_id, product_name, quantity, unit_price, line_total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.SaleID, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice, l.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID retourne une vente par ID (sans les lignes).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT id, company_id, cashier_id, total, created_at FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.CashierID, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetLines retourne les lignes d'une vente.
func (r *SaleRepo) GetLines(saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, line_total
		FROM sale_lines WHERE sale_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByCompany liste les ventes d'une entreprise, plus récentes d'abord.
func (r *SaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, company_id, cashier_id, total, created_at
		FROM sales WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.CashierID, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
