package entity

import "time"

// Company représente une entreprise/tenant du système (multi-tenant).
// Toute ressource métier (produit, utilisateur, vente) appartient à exactement
// une Company ; le CompanyID est fixé à la création et jamais modifié.
type Company struct {
	ID        string
	Name      string
	SIRET     string // numéro SIRET (optionnel selon le pays)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
