package dto

// LoginRequest entrée pour la connexion.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse sortie avec le token JWT. TwoFactorRequired indique que le
// compte a la 2FA activée : le token est émis non vérifié et les routes
// protégées restent fermées jusqu'à vérification du code.
type LoginResponse struct {
	Token             string       `json:"token"`
	TwoFactorRequired bool         `json:"two_factor_required"`
	User              UserResponse `json:"user"`
}

// RegisterRequest entrée pour le bootstrap d'un premier utilisateur (DIRECTEUR)
// lors de la création d'une entreprise.
type RegisterRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"omitempty,max=200"`
}

// TwoFactorSetupResponse sortie de BeginSetup : le secret, l'URI de
// provisionnement otpauth:// et son QR code PNG encodé en base64.
type TwoFactorSetupResponse struct {
	Secret    string `json:"secret"`
	URI       string `json:"uri"`
	QRCodePNG string `json:"qr_code_png"` // base64
}

// TwoFactorCodeRequest entrée pour Activate et Verify.
type TwoFactorCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// TwoFactorVerifyResponse sortie de Verify : un nouveau token portant le
// claim de session vérifiée.
type TwoFactorVerifyResponse struct {
	Token string `json:"token"`
}

// TwoFactorStatusResponse état 2FA du compte, pour l'écran de profil.
// Pending signifie qu'un secret est enrôlé mais pas encore confirmé.
type TwoFactorStatusResponse struct {
	Enabled bool `json:"enabled"`
	Pending bool `json:"pending"`
}
