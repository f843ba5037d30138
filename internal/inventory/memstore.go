package inventory

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store. Deduction serializes through the
// single mutex, which gives the same validate-then-mutate atomicity as
// the row locks in the postgres repo. Used by tests and as a fake for
// callers of the inventory boundary.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	m      map[int64]Product
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[int64]Product)}
}

// Add inserts a product directly, assigning an id when unset.
func (s *MemStore) Add(p Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	s.m[p.ID] = p
	return p.ID
}

func (s *MemStore) List(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.m))
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.m[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) Get(_ context.Context, id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return Product{}, &NotFoundError{ProductID: id}
	}
	return p, nil
}

func (s *MemStore) Create(_ context.Context, in ProductInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p Product
	in.ApplyTo(&p)
	s.nextID++
	p.ID = s.nextID
	s.m[p.ID] = p
	return p.ID, nil
}

func (s *MemStore) Update(_ context.Context, id int64, in ProductInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return &NotFoundError{ProductID: id}
	}
	in.ApplyTo(&p)
	s.m[id] = p
	return nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return &NotFoundError{ProductID: id}
	}
	delete(s.m, id)
	return nil
}

func (s *MemStore) Deduct(_ context.Context, items []ItemQty) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := planDeduction(s.m, items)
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		p := s.m[it.ProductID]
		p.Stock -= it.Quantity
		s.m[it.ProductID] = p
	}
	return total, nil
}
