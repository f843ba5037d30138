package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/auth"
	"github.com/ariefcatur/go-retail-checkout.git/internal/config"
	"github.com/ariefcatur/go-retail-checkout.git/internal/httpx"
	"github.com/ariefcatur/go-retail-checkout.git/internal/postgres"
	"github.com/ariefcatur/go-retail-checkout.git/internal/token"
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
	if err := postgres.EnsureUsersSchema(ctx, db); err != nil {
		slog.Error("schema", "error", err)
		os.Exit(1)
	}

	// Service
	signer := token.NewHS256Signer([]byte(cfg.AuthSecret))
	svc := &auth.Service{
		Store: &auth.Repo{DB: db},
		Codec: token.NewCodec(signer),
		TTL:   cfg.TokenTTL,
	}
	if err := svc.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("seed admin", "error", err)
		os.Exit(1)
	}

	// HTTP server
	router := httpx.NewRouter()
	(&httpx.AuthHandler{Service: svc}).Register(router)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		slog.Info("auth service listening", "addr", cfg.HTTPAddr)
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
