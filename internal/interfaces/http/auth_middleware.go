package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/authz"
	"github.com/malikfall/gestock-api/pkg/jwt"
)

// Clés Locals posées par AuthMiddleware.
const (
	LocalUserID       = "user_id"
	LocalCompanyID    = "company_id"
	LocalRole         = "role"
	LocalTOTPEnabled  = "totp_enabled"
	LocalTOTPVerified = "totp_verified"
)

// AuthMiddleware valide le Bearer Token JWT et pose la session dans c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "en-tête Authorization requis"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format : Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vide"})
		}
		session, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token invalide ou expiré"})
		}
		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalCompanyID, session.CompanyID)
		c.Locals(LocalRole, session.Role)
		c.Locals(LocalTOTPEnabled, session.TOTPEnabled)
		c.Locals(LocalTOTPVerified, session.TOTPVerified)
		return c.Next()
	}
}

// RequireRole n'autorise que les rôles listés. Un rôle absent du token vaut
// refus : 401 si la session n'a pas de rôle, 403 si le rôle n'est pas admis.
func RequireRole(roles ...authz.Role) fiber.Handler {
	allowed := make(map[authz.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "session sans rôle"})
		}
		if _, ok := allowed[authz.Role(role)]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rôle insuffisant pour cette ressource"})
		}
		return c.Next()
	}
}

// Require2FA ferme la route aux sessions dont le second facteur est activé
// mais pas encore vérifié. Les comptes sans 2FA passent librement.
func Require2FA() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enabled, _ := c.Locals(LocalTOTPEnabled).(bool)
		verified, _ := c.Locals(LocalTOTPVerified).(bool)
		if enabled && !verified {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "2FA_REQUIRED", Message: "vérification du second facteur requise"})
		}
		return c.Next()
	}
}

// GetUserID retourne le UserID du contexte (après AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID retourne le CompanyID du contexte (après AuthMiddleware).
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}

// GetRole retourne le rôle du contexte (après AuthMiddleware).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// CurrentIdentity reconstruit l'identité de l'acteur depuis la session pour
// les décisions d'autorisation des cas d'usage.
func CurrentIdentity(c *fiber.Ctx) authz.Identity {
	enabled, _ := c.Locals(LocalTOTPEnabled).(bool)
	verified, _ := c.Locals(LocalTOTPVerified).(bool)
	return authz.Identity{
		ID:                GetUserID(c),
		Role:              authz.Role(GetRole(c)),
		CompanyID:         GetCompanyID(c),
		TwoFactorEnabled:  enabled,
		TwoFactorVerified: verified,
	}
}
