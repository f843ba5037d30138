// Package reconcile watches the checkout audit stream for drift: a
// stock-deducted event with no matching sale-recorded event means
// stock left the ledger without a sale row (a checkout that died
// inside its window). Nothing here repairs the drift; it only makes
// it visible to operators.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	kafkax "github.com/ariefcatur/go-retail-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-retail-checkout.git/internal/redisx"
	"github.com/ariefcatur/go-retail-checkout.git/internal/sales"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type pending struct {
	total float64
	at    time.Time
}

// Drift is one checkout whose deduction never got a sale within the
// grace period.
type Drift struct {
	CheckoutID string
	Total      float64
	Age        time.Duration
}

type Watcher struct {
	grace time.Duration
	now   func() time.Time

	mu      sync.Mutex
	pending map[string]pending
}

func NewWatcher(grace time.Duration) *Watcher {
	return &Watcher{
		grace:   grace,
		now:     time.Now,
		pending: make(map[string]pending),
	}
}

// WithClock overrides the watcher's clock. Tests only.
func (w *Watcher) WithClock(now func() time.Time) *Watcher {
	w.now = now
	return w
}

func (w *Watcher) RecordDeducted(checkoutID string, total float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[checkoutID] = pending{total: total, at: w.now()}
}

func (w *Watcher) RecordSale(checkoutID string, saleID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, checkoutID)
	slog.Debug("checkout settled", "checkout_id", checkoutID, "sale_id", saleID)
}

// Sweep removes and returns every pending deduction older than the
// grace period.
func (w *Watcher) Sweep() []Drift {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()

	var out []Drift
	for id, p := range w.pending {
		if age := now.Sub(p.at); age >= w.grace {
			out = append(out, Drift{CheckoutID: id, Total: p.total, Age: age})
			delete(w.pending, id)
		}
	}
	return out
}

// Run sweeps on a fixed interval until ctx is cancelled, reporting
// each drifted checkout.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, d := range w.Sweep() {
				slog.Warn("stock deducted but no sale recorded",
					"checkout_id", d.CheckoutID, "total", d.Total, "age", d.Age)
			}
		}
	}
}

// Handler adapts the watcher to the kafka consumer, with per-event
// redis dedup (rdb may be nil). Both audit topics share this handler.
func (w *Watcher) Handler(rdb *redis.Client, service string) kafkax.Handler {
	return func(ctx context.Context, m kafkago.Message) error {
		var env sales.Envelope
		if err := json.Unmarshal(m.Value, &env); err != nil {
			return err
		}

		if rdb != nil {
			dkey := fmt.Sprintf(redisx.KeyDedup, service, env.EventID)
			if seen, _ := redisx.Exists(ctx, rdb, dkey); seen {
				return nil
			}
			_ = rdb.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
		}

		switch env.EventType {
		case sales.EventStockDeducted:
			p, err := kafkax.UnwrapPayload[sales.StockDeductedPayload](env.Payload)
			if err != nil {
				return err
			}
			w.RecordDeducted(p.CheckoutID, p.Total)
		case sales.EventSaleRecorded:
			p, err := kafkax.UnwrapPayload[sales.SaleRecordedPayload](env.Payload)
			if err != nil {
				return err
			}
			w.RecordSale(p.CheckoutID, p.SaleID)
		}
		return nil
	}
}
