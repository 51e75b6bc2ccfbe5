package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dhindle/commerce-cif-commercetools/internal"
	"github.com/dhindle/commerce-cif-commercetools/internal/cartpayment"
	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/handler"
	"github.com/dhindle/commerce-cif-commercetools/internal/middleware"
	"github.com/dhindle/commerce-cif-commercetools/internal/router"
	"github.com/dhindle/commerce-cif-commercetools/internal/routes"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize the CommerceTools client
	client, err := commercetools.NewClient(commercetools.Config{
		APIHost:      cfg.CommerceTools.APIHost,
		AuthHost:     cfg.CommerceTools.AuthHost,
		ProjectKey:   cfg.CommerceTools.ProjectKey,
		ClientID:     cfg.CommerceTools.ClientID,
		ClientSecret: cfg.CommerceTools.ClientSecret,
	})
	if err != nil {
		return fmt.Errorf("commercetools client initialization failed: %w", err)
	}
	logger.Info("CommerceTools client initialized", "project", cfg.CommerceTools.ProjectKey)

	// Initialize services
	payments := cartpayment.NewService(client, cfg.Payment.SinglePayment, cfg.Payment.Methods, logger)

	// Initialize handlers
	deps := routes.Deps{
		Carts:      handler.NewCartHandler(payments, logger),
		Products:   handler.NewProductHandler(client, logger),
		Categories: handler.NewCategoryHandler(client, logger),
	}

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("cif")
	deps.Metrics = metrics.Handler()

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.WithRequestLogger(logger),
	)
	routes.Register(r, deps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
