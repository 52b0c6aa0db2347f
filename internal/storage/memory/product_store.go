// Package memory provides in-memory implementations of the storage ports
// for local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abcretail/storefront/internal/domain"
)

type ProductStore struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{items: make(map[string]domain.Product)}
}

var _ domain.ProductStore = (*ProductStore)(nil)

func (s *ProductStore) Create(_ context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Version = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.items[p.ID] = *p
	return nil
}

func (s *ProductStore) GetByID(_ context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *ProductStore) List(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	return out, nil
}

func (s *ProductStore) Update(_ context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != p.Version {
		return domain.ErrVersionConflict
	}
	p.Version = uuid.NewString()
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.items[p.ID] = *p
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}
