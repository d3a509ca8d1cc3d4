package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikfall/gestock-api/internal/application/dto"
	"github.com/malikfall/gestock-api/internal/application/usecase"
	"github.com/malikfall/gestock-api/internal/authz"
	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
)

func saleFixtures(t *testing.T) (*usecase.SaleUseCase, *fakeProductRepo, *fakeSaleRepo) {
	t.Helper()
	products := newFakeProductRepo()
	sales := newFakeSaleRepo()
	companies := newFakeCompanyRepo(&entity.Company{ID: companyA, Name: "Boutique A", Status: "active"})
	tx := &fakeTxRunner{products: products, sales: sales}
	uc := usecase.NewSaleUseCase(tx, sales, companies, nil)

	require.NoError(t, products.Create(&entity.Product{
		ID: "p-cafe", CompanyID: companyA, Name: "Café", NameKey: "café",
		Price: decimal.NewFromFloat(2.50), Stock: 10,
	}))
	require.NoError(t, products.Create(&entity.Product{
		ID: "p-the", CompanyID: companyA, Name: "Thé", NameKey: "thé",
		Price: decimal.NewFromFloat(3.00), Stock: 2,
	}))
	return uc, products, sales
}

func TestCheckout_VenteSimple(t *testing.T) {
	uc, products, _ := saleFixtures(t)

	out, err := uc.Checkout(context.Background(), actorIn(authz.RoleVendeur, companyA), dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{
			{ProductID: "p-cafe", Quantity: 3},
			{ProductID: "p-the", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(10.50).Equal(out.Total), "total attendu 10.50, obtenu %s", out.Total)
	require.Len(t, out.Lines, 2)

	cafe, _ := products.GetByID("p-cafe")
	assert.Equal(t, 7, cafe.Stock)
}

// Le MAGASINIER n'a pas accès à la caisse ; le VENDEUR oui.
func TestCheckout_AccesCaisse(t *testing.T) {
	uc, _, _ := saleFixtures(t)

	_, err := uc.Checkout(context.Background(), actorIn(authz.RoleMagasinier, companyA), dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{{ProductID: "p-cafe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Stock insuffisant sur la deuxième ligne : rien n'est vendu, le stock de la
// première ligne est restauré (pas de vente partielle).
func TestCheckout_StockInsuffisant_AucuneVentePartielle(t *testing.T) {
	uc, products, sales := saleFixtures(t)

	_, err := uc.Checkout(context.Background(), actorIn(authz.RoleVendeur, companyA), dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{
			{ProductID: "p-cafe", Quantity: 2},
			{ProductID: "p-the", Quantity: 5}, // stock = 2
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	cafe, _ := products.GetByID("p-cafe")
	assert.Equal(t, 10, cafe.Stock, "le stock débité avant l'échec doit être restauré")
	assert.Empty(t, sales.sales, "aucune vente ne doit être persistée")
}

// Un produit d'une autre entreprise dans le panier annule tout.
func TestCheckout_ProduitHorsTenant(t *testing.T) {
	uc, products, _ := saleFixtures(t)
	require.NoError(t, products.Create(&entity.Product{
		ID: "p-autre", CompanyID: companyB, Name: "Jus", NameKey: "jus",
		Price: decimal.NewFromFloat(1.00), Stock: 50,
	}))

	_, err := uc.Checkout(context.Background(), actorIn(authz.RoleVendeur, companyA), dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{{ProductID: "p-autre", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_PanierInvalide(t *testing.T) {
	uc, _, _ := saleFixtures(t)
	vendeur := actorIn(authz.RoleVendeur, companyA)

	_, err := uc.Checkout(context.Background(), vendeur, dto.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Checkout(context.Background(), vendeur, dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{{ProductID: "p-cafe", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleGet_IsolationDesTenants(t *testing.T) {
	uc, _, _ := saleFixtures(t)

	created, err := uc.Checkout(context.Background(), actorIn(authz.RoleVendeur, companyA), dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{{ProductID: "p-cafe", Quantity: 1}},
	})
	require.NoError(t, err)

	out, err := uc.GetByID(actorIn(authz.RoleDirecteur, companyB), created.ID)
	require.NoError(t, err)
	assert.Nil(t, out, "une vente d'une autre entreprise doit être introuvable")
}
