package inventory

import "context"

// Store owns product rows. It is the sole authority allowed to
// decrement stock; other services reach it only through the
// /deduct_stock boundary.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, in ProductInput) (int64, error)
	Update(ctx context.Context, id int64, in ProductInput) error
	Delete(ctx context.Context, id int64) error

	// Deduct atomically validates and applies a multi-item stock
	// deduction, returning the priced total. Either every line is
	// applied or none are.
	Deduct(ctx context.Context, items []ItemQty) (float64, error)
}
