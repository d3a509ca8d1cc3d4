package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implémentation du port ProductRepository sur PostgreSQL
// (utilisable avec pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur de persistance des produits.
// Passer un pool ou une tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nouveau produit. L'index unique (company_id, name_key)
// garantit l'unicité du nom, insensible à la casse, par entreprise : c'est la
// base qui fait autorité, pas la pré-vérification applicative.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, name, name_key, description, category, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Name, product.NameKey, product.Description,
		product.Category, product.Price, product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retourne un produit par ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := selectProduct + ` WHERE id = $1`
	var p entity.Product
	if err := scanProduct(r.q.QueryRow(context.Background(), query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByCompanyAndNameKey retourne un produit par entreprise et clé de nom normalisée.
func (r *ProductRepo) GetByCompanyAndNameKey(companyID, nameKey string) (*entity.Product, error) {
	query := selectProduct + ` WHERE company_id = $1 AND name_key = $2`
	var p entity.Product
	if err := scanProduct(r.q.QueryRow(context.Background(), query, companyID, nameKey), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name key: %w", err)
	}
	return &p, nil
}

// ListByCompany liste les produits d'une entreprise avec pagination.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := selectProduct + ` WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update met à jour un produit. Le stock ne passe pas par ici, il évolue via
// les ventes (DecrementStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, name_key = $3, description = $4, category = $5, price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.NameKey, product.Description, product.Category,
		product.Price, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete supprime un produit par ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DecrementStock débite le stock de façon atomique. La clause stock >= $2
// laisse la ligne intacte si le stock est insuffisant : zéro ligne affectée
// signifie vente refusée.
func (r *ProductRepo) DecrementStock(productID string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

const selectProduct = `
	SELECT id, company_id, name, name_key, description, category, price, stock, created_at, updated_at
	FROM products`

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.NameKey, &p.Description, &p.Category,
		&p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
}
