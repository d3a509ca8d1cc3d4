package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale représente une vente encaissée au point de vente.
type Sale struct {
	ID        string
	CompanyID string
	CashierID string // utilisateur ayant encaissé la vente
	Total     decimal.Decimal
	CreatedAt time.Time
}

// SaleLine représente une ligne de vente. UnitPrice est figé au moment de la
// vente : une modification ultérieure du produit ne change pas l'historique.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
