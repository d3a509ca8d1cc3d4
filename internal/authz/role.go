// Package authz centralise la hiérarchie des rôles et la politique de
// permissions. Toutes les décisions sont des fonctions pures : l'identité de
// l'appelant est passée explicitement, jamais lue d'un état global.
//
// Les vérifications de rôle étaient auparavant dupliquées dans chaque handler
// sous forme de listes littérales ; ce paquet est désormais la seule source de
// vérité.
package authz

// Role est l'un des cinq rôles du système, ordonnés strictement.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleDirecteur  Role = "DIRECTEUR"
	RoleGerant     Role = "GERANT"
	RoleVendeur    Role = "VENDEUR"
	RoleMagasinier Role = "MAGASINIER"
)

// roleRanks associe chaque rôle à son rang. Les rangs sont uniques et
// totalement ordonnés ; un rôle inconnu a le rang 0, inférieur à tous.
var roleRanks = map[Role]int{
	RoleSuperAdmin: 5,
	RoleDirecteur:  4,
	RoleGerant:     3,
	RoleVendeur:    2,
	RoleMagasinier: 1,
}

// Rank retourne le rang du rôle, 0 si le rôle est inconnu.
// Les valeurs de rôle peuvent venir du client (création d'utilisateur) :
// on échoue fermé plutôt que de paniquer.
func Rank(role Role) int {
	return roleRanks[role]
}

// Valid indique si role fait partie de l'énumération.
func Valid(role Role) bool {
	_, ok := roleRanks[role]
	return ok
}

// CanManage indique si actor peut gérer un utilisateur de rôle target.
// Comparaison stricte : un rôle ne gère jamais son propre rang ni un rang
// supérieur. Faux pour tout rôle inconnu.
func CanManage(actor, target Role) bool {
	if !Valid(actor) || !Valid(target) {
		return false
	}
	return Rank(actor) > Rank(target)
}
