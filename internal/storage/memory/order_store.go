package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abcretail/storefront/internal/domain"
)

type OrderStore struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{items: make(map[string]domain.Order)}
}

var _ domain.OrderStore = (*OrderStore)(nil)

func (s *OrderStore) Create(_ context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Version = uuid.NewString()
	if o.OrderedAt.IsZero() {
		o.OrderedAt = time.Now().UTC()
	}
	s.items[o.ID] = *o
	return nil
}

func (s *OrderStore) GetByID(_ context.Context, id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.items[id]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (s *OrderStore) List(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, len(s.items))
	for _, o := range s.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderedAt.Equal(out[j].OrderedAt) {
			return out[i].OrderedAt.Before(out[j].OrderedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *OrderStore) Update(_ context.Context, o *domain.Order) error {
	if o.ID == "" {
		return domain.ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != o.Version {
		return domain.ErrVersionConflict
	}
	o.Version = uuid.NewString()
	s.items[o.ID] = *o
	return nil
}

func (s *OrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

func (s *OrderStore) ExistsForCustomer(_ context.Context, customerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.items {
		if o.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}
