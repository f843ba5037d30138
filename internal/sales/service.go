package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/clients"
	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
	kafkax "github.com/ariefcatur/go-retail-checkout.git/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

var (
	ErrUnauthorized   = errors.New("authentication required")
	ErrCheckoutFailed = errors.New("Failed to process checkout")
)

// TokenVerifier authenticates a bearer token against the auth
// service. Validity is established remotely per call, never cached.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (clients.Identity, error)
}

// StockDeducter is the remote deduction boundary of the stock ledger.
type StockDeducter interface {
	DeductStock(ctx context.Context, items []inventory.ItemQty) (float64, error)
}

// Publisher matches the kafka producer surface used for audit events.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service orchestrates checkout across the auth and inventory
// services and owns the sale rows. It never mutates product state
// itself; stock changes only happen through the ledger's deduct call.
type Service struct {
	Sales interface {
		Insert(ctx context.Context, items []inventory.ItemQty, total float64) (int64, error)
	}
	Auth   TokenVerifier
	Ledger StockDeducter

	// audit producers, one per topic; nil disables publishing
	Deducted Publisher
	Recorded Publisher

	ServiceName string
}

// Checkout runs the two-step checkout protocol:
// verify caller → validate items → remote deduct → record sale.
//
// There is no distributed transaction between the deduction and the
// sale insert. If this process dies in between, stock stays deducted
// with no sale row; the stock-deducted audit event marks every such
// window so the reconciler can flag drift. Nothing is retried: a
// failed call is terminal for this request and the caller must
// resubmit.
func (s *Service) Checkout(ctx context.Context, tok string, items []inventory.ItemQty) (saleID int64, total float64, err error) {
	// 1. authenticate before anything else; the deduction must never
	// run for an unverified caller
	if tok == "" {
		return 0, 0, ErrUnauthorized
	}
	if _, err := s.Auth.VerifyToken(ctx, tok); err != nil {
		return 0, 0, ErrUnauthorized
	}

	// 2. shape validation
	if len(items) == 0 {
		return 0, 0, invalid("No items in cart")
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return 0, 0, invalid("Item quantity must be positive")
		}
		if it.ProductID <= 0 {
			return 0, 0, invalid("Invalid product ID")
		}
	}

	checkoutID := uuid.NewString()

	// 3. remote deduction; ledger errors pass through verbatim,
	// transport failures surface as a checkout failure
	total, err = s.Ledger.DeductStock(ctx, items)
	if err != nil {
		var apiErr *clients.APIError
		if errors.As(err, &apiErr) {
			return 0, 0, apiErr
		}
		// an in-process ledger reports its domain errors directly
		var nf *inventory.NotFoundError
		if errors.As(err, &nf) {
			return 0, 0, nf
		}
		var is *inventory.InsufficientStockError
		if errors.As(err, &is) {
			return 0, 0, is
		}
		return 0, 0, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	if total <= 0 {
		// stock is already gone at this point; a zero total means the
		// ledger misbehaved, and there is nothing sane to record
		slog.Error("ledger returned non-positive total after deduction",
			"checkout_id", checkoutID, "total", total)
		return 0, 0, invalid("Invalid total amount")
	}

	// 4. checkout window opens: stock deducted, sale not yet recorded
	s.publishStockDeducted(checkoutID, items, total)

	saleID, err = s.Sales.Insert(ctx, items, total)
	if err != nil {
		slog.Error("sale insert failed after stock deduction; stock and sales have drifted",
			"checkout_id", checkoutID, "total", total, "error", err)
		return 0, 0, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	s.publishSaleRecorded(checkoutID, saleID, total)
	return saleID, total, nil
}

func (s *Service) publishStockDeducted(checkoutID string, items []inventory.ItemQty, total float64) {
	if s.Deducted == nil {
		return
	}
	s.publish(s.Deducted, checkoutID, EventStockDeducted,
		StockDeductedPayload{CheckoutID: checkoutID, Items: items, Total: total})
}

func (s *Service) publishSaleRecorded(checkoutID string, saleID int64, total float64) {
	if s.Recorded == nil {
		return
	}
	s.publish(s.Recorded, checkoutID, EventSaleRecorded,
		SaleRecordedPayload{CheckoutID: checkoutID, SaleID: saleID, Total: total})
}

func (s *Service) publish(p Publisher, checkoutID, eventType string, payload any) {
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: checkoutID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(PartitionKey(checkoutID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
