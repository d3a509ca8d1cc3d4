package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/authz"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
	"github.com/malikfall/gestock-api/pkg/jwt"
)

// JWTConfig configuration pour la génération de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase cas d'usage d'authentification : inscription et connexion.
type UseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewUseCase construit le cas d'usage d'auth.
func NewUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Register crée le premier utilisateur d'une entreprise fraîchement créée,
// avec le rôle DIRECTEUR. Refusé si l'entreprise a déjà des utilisateurs :
// ensuite, seule la création d'équipe (contrôlée par la politique) s'applique.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound // l'entreprise n'existe pas
	}
	existing, err := uc.userRepo.ListByCompany(in.CompanyID, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domain.ErrForbidden
	}
	if other, _ := uc.userRepo.GetByEmailAndCompany(in.Email, in.CompanyID); other != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         string(authz.RoleDirecteur),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login vérifie email/password, génère un JWT et retourne token + utilisateur.
// Si le compte a la 2FA activée, le token est émis avec totp_verified=false :
// les routes sous Require2FA restent fermées jusqu'à vérification du code.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.SessionInfo{
		UserID:       user.ID,
		CompanyID:    user.CompanyID,
		Role:         user.Role,
		TOTPEnabled:  user.TOTPEnabled,
		TOTPVerified: false,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:             token,
		TwoFactorRequired: user.TOTPEnabled,
		User:              *ToUserResponse(user),
	}, nil
}

// ToUserResponse convertit l'entité en DTO (sans password ni secret).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		TOTPEnabled: u.TOTPEnabled,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
