package authz

import "errors"

// Motifs de refus retournés dans une Decision.
var (
	ErrInsufficientRole = errors.New("rôle insuffisant pour cette action")
	ErrRoleEscalation   = errors.New("impossible d'attribuer un rôle supérieur ou égal au sien")
	ErrTenantMismatch   = errors.New("ressource hors du périmètre de l'entreprise")
)

// Identity décrit l'appelant d'une opération protégée. Construite à
// l'authentification, immuable pendant la session sauf TwoFactorVerified qui
// passe à true après vérification du second facteur.
type Identity struct {
	ID                string
	Email             string
	Role              Role
	CompanyID         string
	TwoFactorEnabled  bool
	TwoFactorVerified bool
}

// Decision est le résultat transitoire d'un contrôle de permission.
// Reason est nil quand Allow est vrai.
type Decision struct {
	Allow  bool
	Reason error
}

func allow() Decision            { return Decision{Allow: true} }
func deny(reason error) Decision { return Decision{Allow: false, Reason: reason} }

// CanReadTenantResource autorise la lecture d'une ressource appartenant à
// resourceCompanyID. L'isolation des tenants est stricte : aucun rôle ne la
// contourne, SUPERADMIN compris (pas de vue trans-entreprise dans cette API).
func CanReadTenantResource(id Identity, resourceCompanyID string) bool {
	return id.CompanyID != "" && id.CompanyID == resourceCompanyID
}

// CanWriteProduct autorise la création et la modification de produits.
// Le même ensemble de rôles gouverne les deux opérations.
func CanWriteProduct(id Identity) bool {
	switch id.Role {
	case RoleDirecteur, RoleGerant, RoleMagasinier:
		return true
	}
	return false
}

// CanCreateUser décide si id peut créer un utilisateur de rôle targetRole.
// Contrôle en deux étapes : l'acteur doit être de classe encadrante
// (DIRECTEUR ou GERANT), puis le rôle cible doit être strictement inférieur
// au sien. Un targetRole inconnu est toujours refusé.
func CanCreateUser(id Identity, targetRole Role) Decision {
	switch id.Role {
	case RoleDirecteur, RoleGerant:
	default:
		return deny(ErrInsufficientRole)
	}
	if !CanManage(id.Role, targetRole) {
		return deny(ErrRoleEscalation)
	}
	return allow()
}

// CanAccessTeamRoster autorise la consultation de l'équipe.
func CanAccessTeamRoster(id Identity) bool {
	switch id.Role {
	case RoleDirecteur, RoleGerant:
		return true
	}
	return false
}

// CanAccessPOS autorise l'accès à la caisse (point de vente).
func CanAccessPOS(id Identity) bool {
	switch id.Role {
	case RoleDirecteur, RoleGerant, RoleVendeur:
		return true
	}
	return false
}
