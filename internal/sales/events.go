package sales

import (
	"encoding/json"
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
)

// Checkout audit events. The stock-deducted event is published the
// moment the remote deduction succeeds, before the sale row exists, so
// every checkout window is visible to operators: a deducted event with
// no matching sale-recorded event is drift.

const (
	EventStockDeducted = "CheckoutStockDeducted"
	EventSaleRecorded  = "CheckoutSaleRecorded"
)

const (
	TopicStockDeducted = "checkout.stock.deducted"
	TopicSaleRecorded  = "checkout.sale.recorded"
)

type Envelope struct {
	EventID       string          `json:"event_id"`   // uuid
	EventType     string          `json:"event_type"` // one of the consts above
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // checkout id
	Payload       json.RawMessage `json:"payload"`
}

type StockDeductedPayload struct {
	CheckoutID string              `json:"checkout_id"`
	Items      []inventory.ItemQty `json:"items"`
	Total      float64             `json:"total"`
}

type SaleRecordedPayload struct {
	CheckoutID string  `json:"checkout_id"`
	SaleID     int64   `json:"sale_id"`
	Total      float64 `json:"total"`
}

// Partition key = checkout_id so both events of one checkout keep
// their order.
func PartitionKey(checkoutID string) []byte { return []byte(checkoutID) }
