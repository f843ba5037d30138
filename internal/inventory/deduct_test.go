package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func seedTwo(t *testing.T) *MemStore {
	t.Helper()
	s := NewMemStore()
	s.Add(Product{ID: 1, Name: "Milk", Price: 66, Stock: 5})
	s.Add(Product{ID: 2, Name: "Bread", Price: 45, Stock: 0})
	return s
}

func TestDeductAllOrNothing(t *testing.T) {
	s := seedTwo(t)
	ctx := context.Background()

	// second line fails, so the first must not be applied
	_, err := s.Deduct(ctx, []ItemQty{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 1}})
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if insufficient.Name != "Bread" {
		t.Errorf("error names %q, want Bread", insufficient.Name)
	}

	p, _ := s.Get(ctx, 1)
	if p.Stock != 5 {
		t.Errorf("partial deduction: stock = %d, want 5", p.Stock)
	}
}

func TestDeductUnknownProduct(t *testing.T) {
	s := seedTwo(t)
	_, err := s.Deduct(context.Background(), []ItemQty{{ProductID: 1, Quantity: 1}, {ProductID: 99, Quantity: 1}})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.ProductID != 99 {
		t.Fatalf("want NotFoundError for 99, got %v", err)
	}
	p, _ := s.Get(context.Background(), 1)
	if p.Stock != 5 {
		t.Errorf("partial deduction: stock = %d, want 5", p.Stock)
	}
}

func TestDeductTotalAndRounding(t *testing.T) {
	s := NewMemStore()
	s.Add(Product{ID: 1, Name: "Milk", Price: 66, Stock: 120})
	s.Add(Product{ID: 2, Name: "Gum", Price: 0.1, Stock: 10})

	total, err := s.Deduct(context.Background(), []ItemQty{{ProductID: 1, Quantity: 2}})
	if err != nil {
		t.Fatalf("Deduct() error = %v", err)
	}
	if total != 132.0 {
		t.Errorf("total = %v, want 132.0", total)
	}
	p, _ := s.Get(context.Background(), 1)
	if p.Stock != 118 {
		t.Errorf("stock = %d, want 118", p.Stock)
	}

	// 3 * 0.1 is not representable exactly; the ledger rounds
	total, err = s.Deduct(context.Background(), []ItemQty{{ProductID: 2, Quantity: 3}})
	if err != nil {
		t.Fatalf("Deduct() error = %v", err)
	}
	if total != 0.3 {
		t.Errorf("total = %v, want 0.3", total)
	}
}

// Two lines for the same product must be validated against their sum,
// not independently.
func TestDeductDuplicateLines(t *testing.T) {
	s := NewMemStore()
	s.Add(Product{ID: 1, Name: "Milk", Price: 66, Stock: 5})

	_, err := s.Deduct(context.Background(), []ItemQty{{ProductID: 1, Quantity: 3}, {ProductID: 1, Quantity: 3}})
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	p, _ := s.Get(context.Background(), 1)
	if p.Stock != 5 {
		t.Errorf("stock = %d, want 5", p.Stock)
	}
}

func TestDeductNonPositiveQuantity(t *testing.T) {
	s := seedTwo(t)
	for _, qty := range []int{0, -2} {
		_, err := s.Deduct(context.Background(), []ItemQty{{ProductID: 1, Quantity: qty}})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("qty=%d: want ValidationError, got %v", qty, err)
		}
	}
}

func TestDeductConcurrent(t *testing.T) {
	s := NewMemStore()
	s.Add(Product{ID: 1, Name: "Milk", Price: 66, Stock: 5})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Deduct(context.Background(), []ItemQty{{ProductID: 1, Quantity: 3}})
		}(i)
	}
	wg.Wait()

	var okCount, failCount int
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var insufficient *InsufficientStockError
		if !errors.As(err, &insufficient) {
			t.Fatalf("unexpected error: %v", err)
		}
		failCount++
	}
	if okCount != 1 || failCount != 1 {
		t.Fatalf("want exactly one success and one rejection, got %d/%d", okCount, failCount)
	}
	p, _ := s.Get(context.Background(), 1)
	if p.Stock != 2 {
		t.Errorf("final stock = %d, want 2", p.Stock)
	}
}

func TestLockOrder(t *testing.T) {
	got := lockOrder([]ItemQty{
		{ProductID: 7, Quantity: 1},
		{ProductID: 2, Quantity: 3},
		{ProductID: 7, Quantity: 2},
		{ProductID: 1, Quantity: 1},
	})
	want := []int64{1, 2, 7}
	if len(got) != len(want) {
		t.Fatalf("lockOrder = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lockOrder = %v, want %v", got, want)
		}
	}
}
