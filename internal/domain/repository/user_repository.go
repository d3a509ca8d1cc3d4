package repository

import "github.com/malikfall/gestock-api/internal/domain/entity"

// UserRepository port de persistance pour les utilisateurs.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error

	// SetTOTPSecret persiste le secret TOTP (écriture atomique unique,
	// NOT_CONFIGURED -> SETUP_PENDING).
	SetTOTPSecret(userID, secret string) error
	// EnableTOTP bascule le drapeau d'activation (SETUP_PENDING -> ENABLED).
	EnableTOTP(userID string) error
}
