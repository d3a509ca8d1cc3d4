package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/malikfall/gestock-api/internal/application/auth"
	"github.com/malikfall/gestock-api/internal/application/twofactor"
	"github.com/malikfall/gestock-api/internal/application/usecase"
	"github.com/malikfall/gestock-api/internal/authz"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	SaleUC      *usecase.SaleUseCase
	AuthUC      *auth.UseCase
	TwoFactorUC *twofactor.UseCase
	JWTCfg      auth.JWTConfig
	AuthLimiter *RateLimiter
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public, débit limité par IP contre la force brute)
	authGroup := api.Group("/auth", deps.AuthLimiter.Middleware())
	authHandler := NewAuthHandler(deps.AuthUC, deps.TwoFactorUC, deps.JWTCfg)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// 2FA : accessibles avec un token non vérifié (c'est ici qu'on vérifie),
	// même limitation de débit que le login.
	tfa := api.Group("/auth/2fa", deps.AuthLimiter.Middleware(), AuthMiddleware(deps.JWTCfg.Secret))
	tfa.Get("/status", authHandler.TwoFactorStatus)
	tfa.Post("/setup", authHandler.TwoFactorSetup)
	tfa.Post("/activate", authHandler.TwoFactorActivate)
	tfa.Post("/verify", authHandler.TwoFactorVerify)

	// Companies (public : bootstrap d'un nouveau tenant)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Routes protégées : Bearer Token requis, et session 2FA vérifiée pour
	// les comptes qui l'ont activée.
	protected := api.Group("/", AuthMiddleware(deps.JWTCfg.Secret), Require2FA())

	// Catalogue produits : lecture pour tout rôle du tenant, écriture réservée.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	canWrite := RequireRole(authz.RoleDirecteur, authz.RoleGerant, authz.RoleMagasinier)
	products.Post("/", canWrite, productHandler.Create)
	products.Put("/:id", canWrite, productHandler.Update)
	products.Delete("/:id", canWrite, productHandler.Delete)

	// Équipe : DIRECTEUR et GERANT uniquement.
	users := protected.Group("/users", RequireRole(authz.RoleDirecteur, authz.RoleGerant))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.Roster)
	users.Get("/:id", userHandler.GetByID)

	// Point de vente : le MAGASINIER n'a pas accès à la caisse.
	sales := protected.Group("/sales", RequireRole(authz.RoleDirecteur, authz.RoleGerant, authz.RoleVendeur))
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Checkout)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)
}
