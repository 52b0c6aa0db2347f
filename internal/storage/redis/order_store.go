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

type OrderStore struct {
	RDB *redis.Client
}

var _ domain.OrderStore = (*OrderStore)(nil)

func (s *OrderStore) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Version = uuid.NewString()
	if o.OrderedAt.IsZero() {
		o.OrderedAt = time.Now().UTC()
	}
	return putDoc(ctx, s.RDB, orderKey(o.ID), orderIDsKey, o.ID, o)
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := getDoc(ctx, s.RDB, orderKey(id), &o)
	return o, err
}

func (s *OrderStore) List(ctx context.Context) ([]domain.Order, error) {
	raws, err := listDocs(ctx, s.RDB, orderIDsKey, orderKey)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(raws))
	for _, raw := range raws {
		var o domain.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *OrderStore) Update(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		return domain.ErrValidation
	}
	key := orderKey(o.ID)
	return s.RDB.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		var cur domain.Order
		if err := json.Unmarshal([]byte(raw), &cur); err != nil {
			return err
		}
		if cur.Version != o.Version {
			return domain.ErrVersionConflict
		}
		o.Version = uuid.NewString()
		b, err := json.Marshal(o)
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

func (s *OrderStore) Delete(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.RDB, orderKey(id), orderIDsKey, id)
}

// ExistsForCustomer scans the order set; the List contract is a full scan
// anyway, and the catalog of committed orders stays small per customer.
func (s *OrderStore) ExistsForCustomer(ctx context.Context, customerID string) (bool, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}
