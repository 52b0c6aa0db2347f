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

type CustomerStore struct {
	RDB *redis.Client
}

var _ domain.CustomerStore = (*CustomerStore)(nil)

func (s *CustomerStore) Create(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Version = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	// Username uniqueness rides on the names index: first writer wins.
	ok, err := s.RDB.HSetNX(ctx, customerNamesKey, c.Username, c.ID).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUsernameTaken
	}
	if err := putDoc(ctx, s.RDB, customerKey(c.ID), customerIDsKey, c.ID, c); err != nil {
		_ = s.RDB.HDel(ctx, customerNamesKey, c.Username).Err()
		return err
	}
	return nil
}

func (s *CustomerStore) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := getDoc(ctx, s.RDB, customerKey(id), &c)
	return c, err
}

func (s *CustomerStore) GetByUsername(ctx context.Context, username string) (domain.Customer, error) {
	id, err := s.RDB.HGet(ctx, customerNamesKey, username).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Customer{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Customer{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *CustomerStore) List(ctx context.Context) ([]domain.Customer, error) {
	raws, err := listDocs(ctx, s.RDB, customerIDsKey, customerKey)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0, len(raws))
	for _, raw := range raws {
		var c domain.Customer
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *CustomerStore) Update(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	key := customerKey(c.ID)
	return s.RDB.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		var cur domain.Customer
		if err := json.Unmarshal([]byte(raw), &cur); err != nil {
			return err
		}
		if cur.Version != c.Version {
			return domain.ErrVersionConflict
		}
		if cur.Username != c.Username {
			taken, err := tx.HExists(ctx, customerNamesKey, c.Username).Result()
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrUsernameTaken
			}
		}
		c.Version = uuid.NewString()
		c.CreatedAt = cur.CreatedAt
		c.UpdatedAt = time.Now().UTC()
		b, err := json.Marshal(c)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			if cur.Username != c.Username {
				pipe.HDel(ctx, customerNamesKey, cur.Username)
				pipe.HSet(ctx, customerNamesKey, c.Username, c.ID)
			}
			return nil
		})
		return err
	}, key)
}

func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	cur, err := s.GetByID(ctx, id)
	if domain.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := deleteDoc(ctx, s.RDB, customerKey(id), customerIDsKey, id); err != nil {
		return err
	}
	return s.RDB.HDel(ctx, customerNamesKey, cur.Username).Err()
}
