package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/config"
	kafkax "github.com/ariefcatur/go-retail-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-retail-checkout.git/internal/reconcile"
	"github.com/ariefcatur/go-retail-checkout.git/internal/redisx"
	"github.com/ariefcatur/go-retail-checkout.git/internal/sales"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis (event dedup)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	grace := 30 * time.Second
	if d, err := time.ParseDuration(getenv("RECONCILE_GRACE", "")); err == nil && d > 0 {
		grace = d
	}
	group := getenv("RECONCILE_GROUP", "checkout-reconciler")
	workers := mustAtoi(os.Getenv("RECONCILE_WORKERS"), "4")

	w := reconcile.NewWatcher(grace)
	h := w.Handler(rdb, "reconciler")

	deducted := kafkax.NewConsumer(cfg.KafkaBrokers, group, sales.TopicStockDeducted, workers)
	recorded := kafkax.NewConsumer(cfg.KafkaBrokers, group, sales.TopicSaleRecorded, workers)

	slog.Info("reconciler started",
		"group", group, "workers", workers, "grace", grace,
		"topics", []string{sales.TopicStockDeducted, sales.TopicSaleRecorded})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return deducted.Start(ctx, h) })
	g.Go(func() error { return recorded.Start(ctx, h) })
	g.Go(func() error { w.Run(ctx, 10*time.Second); return nil })

	if err := g.Wait(); err != nil {
		slog.Error("reconciler exit", "error", err)
		os.Exit(1)
	}
	slog.Info("reconciler stopped")
}
