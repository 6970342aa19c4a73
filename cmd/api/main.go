package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kpapadakis/emporos/internal/auth"
	authStore "github.com/kpapadakis/emporos/internal/auth/store"
	"github.com/kpapadakis/emporos/internal/config"
	"github.com/kpapadakis/emporos/internal/customer"
	customerStore "github.com/kpapadakis/emporos/internal/customer/store"
	"github.com/kpapadakis/emporos/internal/database"
	emporosHttp "github.com/kpapadakis/emporos/internal/http"
	authHandler "github.com/kpapadakis/emporos/internal/http/auth"
	customerHandler "github.com/kpapadakis/emporos/internal/http/customer"
	importHandler "github.com/kpapadakis/emporos/internal/http/importfile"
	orderHandler "github.com/kpapadakis/emporos/internal/http/order"
	productHandler "github.com/kpapadakis/emporos/internal/http/product"
	statsHandler "github.com/kpapadakis/emporos/internal/http/stats"
	"github.com/kpapadakis/emporos/internal/importer"
	"github.com/kpapadakis/emporos/internal/order"
	orderStore "github.com/kpapadakis/emporos/internal/order/store"
	"github.com/kpapadakis/emporos/internal/product"
	productStore "github.com/kpapadakis/emporos/internal/product/store"
	"github.com/kpapadakis/emporos/internal/stats"
	statsStore "github.com/kpapadakis/emporos/internal/stats/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		authService     = auth.NewService(authStore.New(db), cfg.JWT.Secret, cfg.JWT.TTL)
		customerService = customer.NewService(customerStore.New(db))
		productService  = product.NewService(productStore.New(db))
		orderService    = order.NewService(orderStore.New(db))
		statsService    = stats.NewService(statsStore.New(db))
		importService   = importer.NewService(customerService, productService)
	)

	var (
		authH     = authHandler.NewHandler(authService)
		customerH = customerHandler.NewHandler(customerService, orderService)
		productH  = productHandler.NewHandler(productService)
		orderH    = orderHandler.NewHandler(orderService)
		statsH    = statsHandler.NewHandler(statsService)
		importH   = importHandler.NewHandler(importService)
	)

	router := emporosHttp.New(cfg.CORS.AllowedOrigins, authH, customerH, productH, orderH, statsH, importH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
