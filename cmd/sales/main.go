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
	kafkax "github.com/ariefcatur/go-retail-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-retail-checkout.git/internal/postgres"
	"github.com/ariefcatur/go-retail-checkout.git/internal/sales"
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
	if err := postgres.EnsureSalesSchema(ctx, db); err != nil {
		slog.Error("schema", "error", err)
		os.Exit(1)
	}

	// Audit producers, one per topic
	pDeducted := kafkax.NewProducer(cfg.KafkaBrokers, sales.TopicStockDeducted, 1024)
	pDeducted.Start(ctx)
	pRecorded := kafkax.NewProducer(cfg.KafkaBrokers, sales.TopicSaleRecorded, 1024)
	pRecorded.Start(ctx)

	// Checkout orchestrator; verification and deduction are remote
	repo := &sales.Repo{DB: db}
	auth := clients.NewAuthClient(cfg.AuthURL, cfg.RemoteTimeout)
	svc := &sales.Service{
		Sales:       repo,
		Auth:        auth,
		Ledger:      clients.NewInventoryClient(cfg.InventoryURL, cfg.DeductTimeout),
		Deducted:    pDeducted,
		Recorded:    pRecorded,
		ServiceName: cfg.ServiceName + "-sales",
	}

	router := httpx.NewRouter()
	sh := &httpx.SalesHandler{Checkout: svc, Store: repo, Auth: auth}
	sh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		slog.Info("sales service listening", "addr", cfg.HTTPAddr)
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

	cancel() // stop producer loops; they flush whatever is queued
	pDeducted.WaitClosed()
	pRecorded.WaitClosed()
}
