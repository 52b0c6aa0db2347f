package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/abcretail/storefront/internal/domain"
)

type ProductStore struct {
	RDB *redis.Client
}

var _ domain.ProductStore = (*ProductStore)(nil)

func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Version = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return putDoc(ctx, s.RDB, productKey(p.ID), productIDsKey, p.ID, p)
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := getDoc(ctx, s.RDB, productKey(id), &p)
	return p, err
}

func (s *ProductStore) List(ctx context.Context) ([]domain.Product, error) {
	raws, err := listDocs(ctx, s.RDB, productIDsKey, productKey)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Update replaces the document only when the caller's version matches the
// stored one. The WATCH aborts the write if the key changes mid-check.
func (s *ProductStore) Update(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	key := productKey(p.ID)
	return s.RDB.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		var cur domain.Product
		if err := json.Unmarshal([]byte(raw), &cur); err != nil {
			return err
		}
		if cur.Version != p.Version {
			return domain.ErrVersionConflict
		}
		p.Version = uuid.NewString()
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = time.Now().UTC()
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}, key)
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.RDB, productKey(id), productIDsKey, id)
}
