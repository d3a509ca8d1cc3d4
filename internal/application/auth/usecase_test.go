package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/malikfall/gestock-api/internal/application/auth"
	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/authz"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetTOTPSecret(userID, secret string) error {
	r.users[userID].TOTPSecret = secret
	return nil
}

func (r *fakeUserRepo) EnableTOTP(userID string) error {
	r.users[userID].TOTPEnabled = true
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var list []*entity.Company
	for _, c := range r.companies {
		list = append(list, c)
	}
	return list, nil
}

var testJWT = auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "gestock-test"}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_PremierUtilisateurDirecteur(t *testing.T) {
	users := newFakeUserRepo()
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"c-1": {ID: "c-1", Name: "Boutique", Status: "active"},
	}}
	uc := auth.NewUseCase(users, companies, testJWT)

	out, err := uc.Register(dto.RegisterRequest{
		CompanyID: "c-1",
		Email:     "fondateur@boutique.fr",
		Password:  "motdepasse",
		Name:      "Fondateur",
	})
	require.NoError(t, err)
	assert.Equal(t, string(authz.RoleDirecteur), out.Role)
	assert.Equal(t, "c-1", out.CompanyID)
	assert.Equal(t, "active", out.Status)
}

func TestRegister_EntrepriseInconnue(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), &fakeCompanyRepo{companies: map[string]*entity.Company{}}, testJWT)

	_, err := uc.Register(dto.RegisterRequest{CompanyID: "absente", Email: "a@b.fr", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Une entreprise qui a déjà des utilisateurs ne passe plus par Register :
// la création d'équipe est contrôlée par la politique de rôles.
func TestRegister_EntrepriseDejaPeuplee(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u-1", CompanyID: "c-1", Email: "deja@la.fr"})
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"c-1": {ID: "c-1", Name: "Boutique"},
	}}
	uc := auth.NewUseCase(users, companies, testJWT)

	_, err := uc.Register(dto.RegisterRequest{CompanyID: "c-1", Email: "nouveau@la.fr", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_Succes(t *testing.T) {
	users := newFakeUserRepo(&entity.User{
		ID: "u-1", CompanyID: "c-1", Email: "vendeur@boutique.fr",
		PasswordHash: hash(t, "motdepasse"), Role: string(authz.RoleVendeur), Status: "active",
	})
	uc := auth.NewUseCase(users, &fakeCompanyRepo{}, testJWT)

	out, err := uc.Login(dto.LoginRequest{Email: "vendeur@boutique.fr", Password: "motdepasse"})
	require.NoError(t, err)
	assert.False(t, out.TwoFactorRequired)
	assert.Equal(t, "u-1", out.User.ID)

	session, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.UserID)
	assert.Equal(t, "c-1", session.CompanyID)
	assert.Equal(t, string(authz.RoleVendeur), session.Role)
	assert.False(t, session.TOTPVerified)
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	users := newFakeUserRepo(&entity.User{
		ID: "u-1", Email: "vendeur@boutique.fr",
		PasswordHash: hash(t, "motdepasse"), Status: "active",
	})
	uc := auth.NewUseCase(users, &fakeCompanyRepo{}, testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "vendeur@boutique.fr", Password: "autre"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UtilisateurInconnu(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), &fakeCompanyRepo{}, testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "personne@nulle.fr", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CompteInactif(t *testing.T) {
	users := newFakeUserRepo(&entity.User{
		ID: "u-1", Email: "parti@boutique.fr",
		PasswordHash: hash(t, "motdepasse"), Status: "suspended",
	})
	uc := auth.NewUseCase(users, &fakeCompanyRepo{}, testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "parti@boutique.fr", Password: "motdepasse"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un compte 2FA connecté reçoit un token non vérifié : il doit passer par la
// vérification du code avant d'atteindre les routes sensibles.
func TestLogin_DeuxFacteursRequis(t *testing.T) {
	users := newFakeUserRepo(&entity.User{
		ID: "u-1", CompanyID: "c-1", Email: "directeur@boutique.fr",
		PasswordHash: hash(t, "motdepasse"), Role: string(authz.RoleDirecteur),
		Status: "active", TOTPEnabled: true,
	})
	uc := auth.NewUseCase(users, &fakeCompanyRepo{}, testJWT)

	out, err := uc.Login(dto.LoginRequest{Email: "directeur@boutique.fr", Password: "motdepasse"})
	require.NoError(t, err)
	assert.True(t, out.TwoFactorRequired)

	session, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.True(t, session.TOTPEnabled)
	assert.False(t, session.TOTPVerified)
}
