package inventory

import (
	"fmt"
	"math"
	"sort"
)

// NotFoundError reports a deduction line referencing an unknown
// product.
type NotFoundError struct{ ProductID int64 }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product %d not found", e.ProductID)
}

// InsufficientStockError reports a deduction line that asked for more
// than is on hand.
type InsufficientStockError struct{ Name string }

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.Name)
}

// planDeduction is the validate-all half of a deduction: every line is
// checked before anything may be mutated, so a single bad line fails
// the whole call with no partial deduction. Quantities are aggregated
// per product first, otherwise two lines for the same product could
// each pass validation yet jointly drive the stock negative.
//
// Returns the sale total, priced from the product rows as passed in
// (the ledger is the single source of truth for pricing), rounded to
// 2 decimal places.
func planDeduction(byID map[int64]Product, items []ItemQty) (float64, error) {
	required := make(map[int64]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return 0, invalid("Item quantity must be positive")
		}
		p, ok := byID[it.ProductID]
		if !ok {
			return 0, &NotFoundError{ProductID: it.ProductID}
		}
		required[it.ProductID] += it.Quantity
		if p.Stock < required[it.ProductID] {
			return 0, &InsufficientStockError{Name: p.Name}
		}
	}

	var total float64
	for _, it := range items {
		total += byID[it.ProductID].Price * float64(it.Quantity)
	}
	return round2(total), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// lockOrder returns the distinct product ids of a deduction in
// ascending order. Every transaction locking in this order keeps
// overlapping deductions from deadlocking each other.
func lockOrder(items []ItemQty) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
