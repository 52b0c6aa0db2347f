package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abcretail/storefront/internal/domain"
)

// Entities live as JSON documents at <kind>:<id> with a set of ids per kind
// so List stays a cheap MGET instead of a keyspace scan.

func getDoc(ctx context.Context, rdb *redis.Client, key string, out any) error {
	raw, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return json.Unmarshal([]byte(raw), out)
}

func listDocs(ctx context.Context, rdb *redis.Client, idsKey string, keyFn func(string) string) ([][]byte, error) {
	ids, err := rdb.SMembers(ctx, idsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", idsKey, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFn(id)
	}
	vals, err := rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget: %w", err)
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // id indexed but document expired/deleted mid-scan
		}
		out = append(out, []byte(s))
	}
	return out, nil
}

func putDoc(ctx context.Context, rdb *redis.Client, key, idsKey, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, b, 0)
		pipe.SAdd(ctx, idsKey, id)
		return nil
	})
	return err
}

func deleteDoc(ctx context.Context, rdb *redis.Client, key, idsKey, id string) error {
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, idsKey, id)
		return nil
	})
	return err
}
