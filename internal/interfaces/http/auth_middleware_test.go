package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikfall/gestock-api/internal/authz"
	apphttp "github.com/malikfall/gestock-api/internal/interfaces/http"
	pkgjwt "github.com/malikfall/gestock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "gestock-test"
	testExpMin    = 60
)

// buildTestApp construit une application Fiber minimale :
//   - AuthMiddleware pour parser le JWT et poser les locals
//   - RequireRole pour autoriser l'accès
//   - Un handler factice qui répond 200 si les middlewares passent
func buildTestApp(allowedRoles ...authz.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor génère un JWT avec la session indiquée.
func tokenFor(t *testing.T, s pkgjwt.SessionInfo) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, s, testIssuer, testExpMin)
	require.NoError(t, err, "un token JWT valide doit être généré")
	return "Bearer " + tok
}

// tokenForRole génère un JWT avec le rôle indiqué, sans 2FA.
func tokenForRole(t *testing.T, role authz.Role) string {
	t.Helper()
	return tokenFor(t, pkgjwt.SessionInfo{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Role:      string(role),
	})
}

// doRequest lance une requête GET et retourne la réponse.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Cas 1 : le rôle est admis → HTTP 200.
func TestRequireRole_DirecteurAccedeRouteEquipe(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur, authz.RoleGerant)
	resp := doRequest(t, app, "/protected", tokenForRole(t, authz.RoleDirecteur))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"le DIRECTEUR doit accéder aux routes de l'équipe")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "DIRECTEUR", body["role"])
}

// Cas 1b : multi-rôles, le VENDEUR passe sur une route caisse.
func TestRequireRole_VendeurAccedeCaisse(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur, authz.RoleGerant, authz.RoleVendeur)
	resp := doRequest(t, app, "/protected", tokenForRole(t, authz.RoleVendeur))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Cas 2 : rôle non admis → HTTP 403 Forbidden.
func TestRequireRole_MagasinierBloqueEnCaisse(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur, authz.RoleGerant, authz.RoleVendeur)
	resp := doRequest(t, app, "/protected", tokenForRole(t, authz.RoleMagasinier))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"le MAGASINIER n'a pas accès à la caisse")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Cas 2b : le VENDEUR n'accède pas aux routes de l'équipe.
func TestRequireRole_VendeurBloqueSurEquipe(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur, authz.RoleGerant)
	resp := doRequest(t, app, "/protected", tokenForRole(t, authz.RoleVendeur))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Cas 3 : token sans claim de rôle → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSansRole_Retourne401(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur)
	resp := doRequest(t, app, "/protected", tokenFor(t, pkgjwt.SessionInfo{
		UserID:    testUserID,
		CompanyID: testCompanyID,
	}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token sans rôle doit retourner 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// Cas 4 : rôle inconnu dans le token → refus (401 ou 403 selon le contenu,
// jamais 200). La politique est fermée par défaut.
func TestRequireRole_RoleInconnu_Refuse(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur, authz.RoleGerant)
	resp := doRequest(t, app, "/protected", tokenFor(t, pkgjwt.SessionInfo{
		UserID:    testUserID,
		CompanyID: testCompanyID,
		Role:      "STAGIAIRE",
	}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Cas 5 : sans en-tête Authorization → HTTP 401.
func TestRequireRole_SansAuthHeader_Retourne401(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Cas 6 : token invalide / malformé → HTTP 401.
func TestRequireRole_TokenInvalide_Retourne401(t *testing.T) {
	app := buildTestApp(authz.RoleDirecteur)
	resp := doRequest(t, app, "/protected", "Bearer token.invalide.ici")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Require2FA — portail de session à second facteur
// ──────────────────────────────────────────────────────────────────────────────

func build2FAApp() *fiber.App {
	app := fiber.New()
	app.Get("/sensitive",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.Require2FA(),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

// Un compte sans 2FA passe librement.
func TestRequire2FA_CompteSans2FA_Passe(t *testing.T) {
	app := build2FAApp()
	resp := doRequest(t, app, "/sensitive", tokenForRole(t, authz.RoleVendeur))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// 2FA activée mais code pas encore vérifié → 403 2FA_REQUIRED.
func TestRequire2FA_SessionNonVerifiee_Bloquee(t *testing.T) {
	app := build2FAApp()
	resp := doRequest(t, app, "/sensitive", tokenFor(t, pkgjwt.SessionInfo{
		UserID:      testUserID,
		CompanyID:   testCompanyID,
		Role:        string(authz.RoleDirecteur),
		TOTPEnabled: true,
	}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "2FA_REQUIRED")
}

// Session vérifiée → 200.
func TestRequire2FA_SessionVerifiee_Passe(t *testing.T) {
	app := build2FAApp()
	resp := doRequest(t, app, "/sensitive", tokenFor(t, pkgjwt.SessionInfo{
		UserID:       testUserID,
		CompanyID:    testCompanyID,
		Role:         string(authz.RoleDirecteur),
		TOTPEnabled:  true,
		TOTPVerified: true,
	}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extraction des claims du token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraitClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		id := apphttp.CurrentIdentity(c)
		return c.JSON(fiber.Map{
			"user_id":    id.ID,
			"company_id": id.CompanyID,
			"role":       string(id.Role),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, authz.RoleGerant))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "GERANT", body["role"])
}
