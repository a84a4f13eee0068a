package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/printquote/internal/config"
	"github.com/Simplici0/printquote/internal/db"
	"github.com/Simplici0/printquote/internal/inventory"
	"github.com/Simplici0/printquote/internal/orders"
	"github.com/Simplici0/printquote/internal/pricing"
	"github.com/Simplici0/printquote/internal/seed"
)

type server struct {
	auth      *authService
	orders    *orders.Store
	inventory *inventory.Service
	pricing   *pricing.Config
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	pricingConfig := pricing.DefaultConfig()
	srv := &server{
		auth:    newAuthService(database, cfg.SessionSecret),
		orders:  orders.NewStore(database, pricingConfig),
		pricing: pricingConfig,
	}

	stats, err := seed.Run(ctx, database, srv.orders, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		DemoOrders:    cfg.IsDev(),
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	log.Printf("seed complete: %d inserts", stats.Inserts)
	if cfg.InventoryConfigured() {
		client := inventory.NewClient(inventory.ClientConfig{
			BaseURL: cfg.InventoryBaseURL,
			User:    cfg.InventoryUser,
			APIKey:  cfg.InventoryAPIKey,
		})
		srv.inventory = inventory.NewService(client, inventory.NewCache(cfg.InventoryCacheTTL), pricingConfig)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on %s (env=%s)", httpServer.Addr, cfg.Env)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/pricing", s.handlePricingTables)
	r.Post("/api/quote", s.handleQuote)
	r.Get("/api/garments/{styleID}", s.handleGarmentPrices)
	r.Post("/api/orders", s.handleOrderSubmit)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.auth.requireAdmin)
		r.Get("/orders", s.handleOrdersList)
		r.Get("/orders/{id}", s.handleOrderDetail)
		r.Get("/orders/{id}/verify", s.handleOrderVerify)
	})
	return r
}
