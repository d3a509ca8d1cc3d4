package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutLineRequest une ligne du panier à encaisser.
type CheckoutLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest entrée pour encaisser une vente au point de vente.
type CheckoutRequest struct {
	Lines []CheckoutLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineResponse ligne de vente en sortie.
type SaleLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse sortie d'une vente.
type SaleResponse struct {
	ID        string             `json:"id"`
	CompanyID string             `json:"company_id"`
	CashierID string             `json:"cashier_id"`
	Total     decimal.Decimal    `json:"total"`
	Lines     []SaleLineResponse `json:"lines,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// SaleListResponse liste paginée de ventes.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
