package dto

import "time"

// CreateUserRequest entrée pour créer un membre de l'équipe (password en
// clair, hashé dans le use case). Le rôle cible est contrôlé par la politique
// de permissions, pas seulement par la validation.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=SUPERADMIN DIRECTEUR GERANT VENDEUR MAGASINIER"`
}

// UserResponse sortie d'un utilisateur (sans password ni secret TOTP).
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	TOTPEnabled bool      `json:"totp_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse liste paginée d'utilisateurs.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
