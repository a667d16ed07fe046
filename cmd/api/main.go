package main

import (
	"context"
	"log"

	_ "storefront/docs"
	"storefront/internal/admin"
	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/httpapi"
	"storefront/internal/order"
	"storefront/internal/postgres"
	"storefront/internal/review"
	"storefront/internal/user"
)

// @title           Storefront API
// @version         1.0
// @description     E-commerce REST backend: auth, catalog, cart, checkout, reviews, admin.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("[api] JWT_SECRET is required")
	}

	ctx := context.Background()

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[api] postgres connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		log.Fatalf("[api] migrate: %v", err)
	}

	h := httpapi.NewHandler(httpapi.Deps{
		Users:    user.NewPGRepo(pool),
		Catalog:  catalog.NewPGRepo(pool),
		Carts:    cart.NewPGRepo(pool),
		Orders:   order.NewPGRepo(pool),
		Reviews:  review.NewPGRepo(pool),
		Admin:    admin.NewPGRepo(pool),
		Checkout: order.NewCheckout(pool, order.ZeroCharges{}),
		Tokens:   auth.NewTokens(cfg.JWTSecret),
	})

	r := httpapi.API(cfg, h)

	log.Printf("[api] listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("[api] server: %v", err)
	}
}
