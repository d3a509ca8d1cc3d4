// Package twofactor implémente la double authentification TOTP.
//
// États du compte : NOT_CONFIGURED -> SETUP_PENDING -> ENABLED, portés par le
// couple (TOTPSecret, TOTPEnabled) de l'utilisateur. La session porte
// indépendamment son propre état vérifié/non vérifié dans le JWT.
//
// L'algorithme HOTP/TOTP et l'encodage QR sont entièrement délégués à
// pquerna/otp ; ce paquet n'implémente que la machine à états.
package twofactor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"net/url"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
)

const qrSize = 256 // pixels

// UseCase cas d'usage de la double authentification.
type UseCase struct {
	userRepo repository.UserRepository
	issuer   string
}

// NewUseCase construit le cas d'usage. issuer est le nom affiché dans les
// applications d'authentification (Google Authenticator, etc.).
func NewUseCase(userRepo repository.UserRepository, issuer string) *UseCase {
	return &UseCase{userRepo: userRepo, issuer: issuer}
}

// BeginSetup démarre (ou reprend) la configuration de la 2FA.
//   - ErrTwoFactorAlreadyEnabled si le compte est déjà ENABLED.
//   - Sans secret existant : en génère un et le persiste (NOT_CONFIGURED ->
//     SETUP_PENDING).
//   - Idempotent avant activation : un second appel retourne le même secret
//     avec un nouvel encodage QR de la même URI.
func (uc *UseCase) BeginSetup(userID string) (*dto.TwoFactorSetupResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.TOTPEnabled {
		return nil, domain.ErrTwoFactorAlreadyEnabled
	}

	if user.TOTPSecret != "" {
		return uc.setupResponse(user.TOTPSecret, user.Email)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      uc.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("générer le secret TOTP: %w", err)
	}
	if err := uc.userRepo.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		return nil, err
	}
	return uc.setupResponse(key.Secret(), user.Email)
}

// Activate confirme la configuration avec un premier code valide et bascule
// le compte en ENABLED. Aucune écriture en cas d'échec.
func (uc *UseCase) Activate(userID, code string) error {
	if !isSixDigits(code) {
		return domain.ErrInvalidCodeFormat
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.TOTPEnabled {
		return domain.ErrTwoFactorAlreadyEnabled
	}
	if user.TOTPSecret == "" {
		return domain.ErrNoSecretConfigured
	}
	// Fenêtre de tolérance standard (un pas de temps de part et d'autre).
	if !totp.Validate(code, user.TOTPSecret) {
		return domain.ErrInvalidCode
	}
	return uc.userRepo.EnableTOTP(user.ID)
}

// Verify contrôle un code pour une session déjà authentifiée par mot de
// passe. En cas de succès, l'appelant marque la session vérifiée (réémission
// du token) ; ce cas d'usage ne modifie aucun état.
func (uc *UseCase) Verify(userID, code string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.TOTPEnabled {
		return domain.ErrTwoFactorNotConfigured
	}
	if !isSixDigits(code) {
		return domain.ErrInvalidCodeFormat
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return domain.ErrInvalidCode
	}
	return nil
}

// Status retourne l'état 2FA du compte (pour l'écran de profil).
func (uc *UseCase) Status(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// setupResponse construit l'URI otpauth:// et son QR code PNG pour un secret.
func (uc *UseCase) setupResponse(secret, email string) (*dto.TwoFactorSetupResponse, error) {
	uri := provisioningURI(uc.issuer, email, secret)
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return nil, fmt.Errorf("construire la clé TOTP: %w", err)
	}
	img, err := key.Image(qrSize, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encoder le QR code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoder le PNG: %w", err)
	}
	return &dto.TwoFactorSetupResponse{
		Secret:    secret,
		URI:       uri,
		QRCodePNG: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// provisioningURI construit l'URI otpauth://totp/Issuer:compte?...
// avec les paramètres par défaut (SHA1, 6 chiffres, période 30 s).
func provisioningURI(issuer, account, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + issuer + ":" + account,
		RawQuery: v.Encode(),
	}
	return u.String()
}

// isSixDigits vérifie que code est exactement 6 chiffres ASCII.
func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
