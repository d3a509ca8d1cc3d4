package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound           = errors.New("ressource introuvable")
	ErrUserNotFound       = errors.New("utilisateur introuvable")
	ErrEmailAlreadyExists = errors.New("cet email est déjà enregistré")
	ErrInvalidInput       = errors.New("entrée invalide")
	ErrDuplicate          = errors.New("ressource dupliquée")
	ErrUnauthorized       = errors.New("non authentifié")
	ErrForbidden          = errors.New("accès refusé")
	ErrConflict           = errors.New("conflit avec l'état actuel")
	ErrInsufficientStock  = errors.New("stock insuffisant")
)

// Erreurs de la double authentification (TOTP).
var (
	ErrTwoFactorAlreadyEnabled = errors.New("la double authentification est déjà activée")
	ErrTwoFactorNotConfigured  = errors.New("la double authentification n'est pas activée")
	ErrNoSecretConfigured      = errors.New("aucun secret TOTP configuré")
	ErrInvalidCodeFormat       = errors.New("le code doit contenir exactement 6 chiffres")
	ErrInvalidCode             = errors.New("code de vérification invalide")
)
