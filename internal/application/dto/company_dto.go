package dto

import "time"

// CreateCompanyRequest entrée pour créer une entreprise (tenant).
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	SIRET   string `json:"siret" validate:"omitempty,max=20"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse sortie d'une entreprise.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SIRET     string    `json:"siret"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse liste paginée d'entreprises.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
