package sales

import (
	"time"

	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
)

type Sale struct {
	ID        int64               `json:"id"`
	Items     []inventory.ItemQty `json:"items"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
}

// SaleInput is the allow-list of admin-mutable sale fields.
type SaleInput struct {
	Total *float64             `json:"total"`
	Items *[]inventory.ItemQty `json:"items"`
}

type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func invalid(msg string) error { return &ValidationError{msg: msg} }

func (in SaleInput) Validate() error {
	if in.Total != nil {
		if *in.Total < 0 {
			return invalid("Total amount cannot be negative")
		}
		if *in.Total == 0 {
			return invalid("Total amount must be greater than zero")
		}
	}
	if in.Items != nil {
		for _, it := range *in.Items {
			if it.Quantity <= 0 {
				return invalid("Item quantity must be positive")
			}
		}
	}
	return nil
}
