package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/abcretail/storefront/internal/domain"
)

type cartKey struct{ owner, productID string }

type CartStore struct {
	mu    sync.RWMutex
	lines map[cartKey]int
}

func NewCartStore() *CartStore {
	return &CartStore{lines: make(map[cartKey]int)}
}

var _ domain.CartStore = (*CartStore)(nil)

func (s *CartStore) Put(_ context.Context, line domain.CartLine) error {
	if line.Owner == "" || line.ProductID == "" || line.Quantity < 1 {
		return domain.ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines[cartKey{line.Owner, line.ProductID}] = line.Quantity
	return nil
}

func (s *CartStore) Get(_ context.Context, owner, productID string) (domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qty, ok := s.lines[cartKey{owner, productID}]
	if !ok {
		return domain.CartLine{}, domain.ErrNotFound
	}
	return domain.CartLine{Owner: owner, ProductID: productID, Quantity: qty}, nil
}

func (s *CartStore) ListByOwner(_ context.Context, owner string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CartLine
	for k, qty := range s.lines {
		if k.owner != owner {
			continue
		}
		out = append(out, domain.CartLine{Owner: owner, ProductID: k.productID, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (s *CartStore) Remove(_ context.Context, owner, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lines, cartKey{owner, productID})
	return nil
}

func (s *CartStore) Clear(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.lines {
		if k.owner == owner {
			delete(s.lines, k)
		}
	}
	return nil
}

func (s *CartStore) Count(_ context.Context, owner string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for k, qty := range s.lines {
		if k.owner == owner {
			n += qty
		}
	}
	return n, nil
}
