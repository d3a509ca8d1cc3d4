package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/malikfall/gestock-api/internal/authz"
)

var allRoles = []authz.Role{
	authz.RoleSuperAdmin,
	authz.RoleDirecteur,
	authz.RoleGerant,
	authz.RoleVendeur,
	authz.RoleMagasinier,
}

// Les rangs doivent être uniques et totalement ordonnés (5..1).
func TestRank_TotalOrder(t *testing.T) {
	seen := map[int]authz.Role{}
	for _, r := range allRoles {
		rank := authz.Rank(r)
		assert.Greater(t, rank, 0, "le rôle %s doit avoir un rang positif", r)
		prev, dup := seen[rank]
		assert.False(t, dup, "rang %d partagé entre %s et %s", rank, prev, r)
		seen[rank] = r
	}
	assert.Equal(t, 5, authz.Rank(authz.RoleSuperAdmin))
	assert.Equal(t, 4, authz.Rank(authz.RoleDirecteur))
	assert.Equal(t, 3, authz.Rank(authz.RoleGerant))
	assert.Equal(t, 2, authz.Rank(authz.RoleVendeur))
	assert.Equal(t, 1, authz.Rank(authz.RoleMagasinier))
}

// Un rôle inconnu a le rang 0 et n'est jamais valide (échec fermé).
func TestRank_UnknownRoleFailsClosed(t *testing.T) {
	assert.Equal(t, 0, authz.Rank("PDG"))
	assert.Equal(t, 0, authz.Rank(""))
	assert.False(t, authz.Valid("directeur")) // sensible à la casse
	assert.False(t, authz.CanManage("PDG", authz.RoleVendeur))
	assert.False(t, authz.CanManage(authz.RoleDirecteur, "PDG"))
}

// CanManage(a,b) == true ssi Rank(a) > Rank(b), pour toutes les paires.
func TestCanManage_Matrix(t *testing.T) {
	for _, a := range allRoles {
		for _, b := range allRoles {
			want := authz.Rank(a) > authz.Rank(b)
			assert.Equal(t, want, authz.CanManage(a, b), "CanManage(%s, %s)", a, b)
		}
	}
}

// Cas réflexif : aucun rôle ne se gère lui-même.
func TestCanManage_NeverReflexive(t *testing.T) {
	for _, r := range allRoles {
		assert.False(t, authz.CanManage(r, r), "CanManage(%s, %s) doit être faux", r, r)
	}
}
