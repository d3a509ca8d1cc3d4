package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product représente un produit du catalogue (scopé par Company).
// NameKey est le nom normalisé (case folding Unicode) ; l'unicité par
// entreprise porte sur ce champ, pas sur Name.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	NameKey     string // nom replié en minuscules, clé d'unicité par company
	Description string
	Category    string
	Price       decimal.Decimal // prix de vente TTC
	Stock       int             // quantité disponible, décrémentée lors des ventes
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
