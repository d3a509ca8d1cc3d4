package entity

import "time"

// User représente un utilisateur du système (appartient à une Company).
// Le rôle est l'une des cinq constantes de internal/authz.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // hash bcrypt, jamais en clair après persistance
	Name         string
	Role         string // SUPERADMIN, DIRECTEUR, GERANT, VENDEUR, MAGASINIER
	Status       string // active, inactive, suspended
	TOTPSecret   string // secret base32 ; vide = 2FA non configurée
	TOTPEnabled  bool   // true une fois l'activation confirmée par un code valide
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
