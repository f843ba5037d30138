package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/clients"
	"github.com/ariefcatur/go-retail-checkout.git/internal/config"
	"github.com/ariefcatur/go-retail-checkout.git/internal/httpx"
	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
	"github.com/ariefcatur/go-retail-checkout.git/internal/postgres"
	"github.com/ariefcatur/go-retail-checkout.git/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		slog.Error("db connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.EnsureProductsSchema(ctx, db); err != nil {
		slog.Error("schema", "error", err)
		os.Exit(1)
	}

	repo := &inventory.Repo{DB: db}
	if err := repo.SeedCatalog(ctx); err != nil {
		slog.Error("seed catalog", "error", err)
		os.Exit(1)
	}

	// Redis (product list cache)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Handler; admin calls are verified remotely against the auth service
	router := httpx.NewRouter()
	ih := &httpx.InventoryHandler{
		Store: repo,
		Auth:  clients.NewAuthClient(cfg.AuthURL, cfg.RemoteTimeout),
		Redis: rdb,
	}
	ih.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		slog.Info("inventory service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	slog.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
