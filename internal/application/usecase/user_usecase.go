package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/authz"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
)

// UserUseCase gestion de l'équipe : consultation et création d'utilisateurs,
// sous contrôle de la politique (classe encadrante + anti-escalade).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construit le cas d'usage.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crée un membre de l'équipe dans l'entreprise de l'acteur.
// Double contrôle : l'acteur doit être DIRECTEUR ou GERANT, et le rôle cible
// strictement inférieur au sien. Un rôle cible inconnu est toujours refusé.
func (uc *UserUseCase) Create(actor authz.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if d := authz.CanCreateUser(actor, authz.Role(in.Role)); !d.Allow {
		return nil, d.Reason
	}
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByEmailAndCompany(in.Email, actor.CompanyID)
	if existing != nil {
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
		CompanyID:    actor.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Roster liste l'équipe de l'entreprise de l'acteur (DIRECTEUR et GERANT).
func (uc *UserUseCase) Roster(actor authz.Identity, limit, offset int) (*dto.UserListResponse, error) {
	if !authz.CanAccessTeamRoster(actor) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListByCompany(actor.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID retourne un utilisateur de l'entreprise de l'acteur ; hors tenant il
// se comporte comme introuvable.
func (uc *UserUseCase) GetByID(actor authz.Identity, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !authz.CanReadTenantResource(actor, user.CompanyID) {
		return nil, nil
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
