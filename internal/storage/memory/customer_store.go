package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abcretail/storefront/internal/domain"
)

type CustomerStore struct {
	mu         sync.RWMutex
	items      map[string]domain.Customer
	byUsername map[string]string
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		items:      make(map[string]domain.Customer),
		byUsername: make(map[string]string),
	}
}

var _ domain.CustomerStore = (*CustomerStore)(nil)

func (s *CustomerStore) Create(_ context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[c.Username]; taken {
		return domain.ErrUsernameTaken
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Version = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.items[c.ID] = *c
	s.byUsername[c.Username] = c.ID
	return nil
}

func (s *CustomerStore) GetByID(_ context.Context, id string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *CustomerStore) GetByUsername(_ context.Context, username string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	return s.items[id], nil
}

func (s *CustomerStore) List(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Customer, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	return out, nil
}

func (s *CustomerStore) Update(_ context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != c.Version {
		return domain.ErrVersionConflict
	}
	if cur.Username != c.Username {
		if _, taken := s.byUsername[c.Username]; taken {
			return domain.ErrUsernameTaken
		}
		delete(s.byUsername, cur.Username)
		s.byUsername[c.Username] = c.ID
	}
	c.Version = uuid.NewString()
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.items[c.ID] = *c
	return nil
}

func (s *CustomerStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.items[id]; ok {
		delete(s.byUsername, cur.Username)
		delete(s.items, id)
	}
	return nil
}
