package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/malikfall/gestock-api/internal/application/auth"
	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/application/twofactor"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/pkg/jwt"
)

// AuthHandler gère inscription, connexion et double authentification.
type AuthHandler struct {
	uc     *auth.UseCase
	tfa    *twofactor.UseCase
	jwtCfg auth.JWTConfig
}

// NewAuthHandler construit le handler d'auth.
func NewAuthHandler(uc *auth.UseCase, tfa *twofactor.UseCase, jwtCfg auth.JWTConfig) *AuthHandler {
	return &AuthHandler{uc: uc, tfa: tfa, jwtCfg: jwtCfg}
}

// Register godoc
// @Summary      Créer le premier utilisateur d'une entreprise
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, company_id"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.Email == "" || in.Password == "" || in.CompanyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password et company_id sont requis"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password doit compter au moins 8 caractères"})
	}
	user, err := h.uc.Register(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "cet email est déjà enregistré dans cette entreprise"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "l'entreprise n'existe pas"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "l'entreprise a déjà des utilisateurs, passez par la gestion d'équipe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Se connecter
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email et password sont requis"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identifiants invalides"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "compte inactif ou suspendu"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TwoFactorSetup godoc
// @Summary      Démarrer l'enrôlement du second facteur
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TwoFactorSetupResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/auth/2fa/setup [post]
func (h *AuthHandler) TwoFactorSetup(c *fiber.Ctx) error {
	out, err := h.tfa.BeginSetup(GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTwoFactorAlreadyEnabled):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "2FA_ALREADY_ENABLED", Message: "la double authentification est déjà active"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "utilisateur introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TwoFactorActivate godoc
// @Summary      Activer le second facteur avec un premier code valide
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TwoFactorCodeRequest  true  "code à 6 chiffres"
// @Success      200   {object}  dto.TwoFactorVerifyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/2fa/activate [post]
func (h *AuthHandler) TwoFactorActivate(c *fiber.Ctx) error {
	var in dto.TwoFactorCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.tfa.Activate(GetUserID(c), in.Code); err != nil {
		return twoFactorError(c, err)
	}
	// La session devient activée ET vérifiée : on réémet un token à jour.
	return h.reissueToken(c, true, true)
}

// TwoFactorVerify godoc
// @Summary      Vérifier le code du second facteur après connexion
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TwoFactorCodeRequest  true  "code à 6 chiffres"
// @Success      200   {object}  dto.TwoFactorVerifyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/2fa/verify [post]
func (h *AuthHandler) TwoFactorVerify(c *fiber.Ctx) error {
	var in dto.TwoFactorCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	if err := h.tfa.Verify(GetUserID(c), in.Code); err != nil {
		return twoFactorError(c, err)
	}
	return h.reissueToken(c, true, true)
}

// TwoFactorStatus godoc
// @Summary      État 2FA du compte
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TwoFactorStatusResponse
// @Router       /api/auth/2fa/status [get]
func (h *AuthHandler) TwoFactorStatus(c *fiber.Ctx) error {
	user, err := h.tfa.Status(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "utilisateur introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.TwoFactorStatusResponse{
		Enabled: user.TOTPEnabled,
		Pending: !user.TOTPEnabled && user.TOTPSecret != "",
	})
}

// reissueToken émet un nouveau token portant l'état 2FA de session à jour.
func (h *AuthHandler) reissueToken(c *fiber.Ctx, enabled, verified bool) error {
	token, err := jwt.Generate(h.jwtCfg.Secret, jwt.SessionInfo{
		UserID:       GetUserID(c),
		CompanyID:    GetCompanyID(c),
		Role:         GetRole(c),
		TOTPEnabled:  enabled,
		TOTPVerified: verified,
	}, h.jwtCfg.Issuer, h.jwtCfg.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.TwoFactorVerifyResponse{Token: token})
}

// twoFactorError traduit les erreurs du portail 2FA en réponses HTTP.
func twoFactorError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCodeFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CODE_FORMAT", Message: "le code doit compter exactement 6 chiffres"})
	case errors.Is(err, domain.ErrInvalidCode):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CODE", Message: "code incorrect"})
	case errors.Is(err, domain.ErrTwoFactorAlreadyEnabled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "2FA_ALREADY_ENABLED", Message: "la double authentification est déjà active"})
	case errors.Is(err, domain.ErrNoSecretConfigured):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SECRET", Message: "aucun enrôlement en cours, appelez d'abord /2fa/setup"})
	case errors.Is(err, domain.ErrTwoFactorNotConfigured):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "2FA_NOT_CONFIGURED", Message: "la double authentification n'est pas active sur ce compte"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "utilisateur introuvable"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
