package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclut les claims standards JWT plus les champs propres à
// l'application. Role permet au middleware RBAC de décider sans consulter la
// DB ; TOTPEnabled/TOTPVerified portent l'état du second facteur de la
// session (AUTHENTICATED_NO_2FA -> AUTHENTICATED_2FA_VERIFIED).
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	CompanyID    string `json:"company_id"`
	Role         string `json:"role"`
	TOTPEnabled  bool   `json:"totp_enabled"`
	TOTPVerified bool   `json:"totp_verified"`
}

// SessionInfo regroupe les champs applicatifs à embarquer dans le token.
type SessionInfo struct {
	UserID       string
	CompanyID    string
	Role         string
	TOTPEnabled  bool
	TOTPVerified bool
}

// Generate génère un token JWT signé (HS256) portant la session.
func Generate(secret string, s SessionInfo, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vide")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       s.UserID,
		CompanyID:    s.CompanyID,
		Role:         s.Role,
		TOTPEnabled:  s.TOTPEnabled,
		TOTPVerified: s.TOTPVerified,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valide le token et retourne la session qu'il porte.
// Erreur si le token est invalide, expiré ou de signature incorrecte.
func Parse(secret, tokenString string) (*SessionInfo, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vide")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims invalides")
	}
	return &SessionInfo{
		UserID:       claims.UserID,
		CompanyID:    claims.CompanyID,
		Role:         claims.Role,
		TOTPEnabled:  claims.TOTPEnabled,
		TOTPVerified: claims.TOTPVerified,
	}, nil
}
