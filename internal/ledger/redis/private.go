// Package redis implements the private-data side of the ledger substrate on
// Redis. Each restricted collection maps to one hash, so private payloads
// live in a store the public ledger never touches.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PrivateStore holds restricted-visibility payloads in Redis hashes. It
// implements ledger.PrivateStore and is wired through ledger.Partitioned.
type PrivateStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewPrivateStore constructs a Redis-backed private partition.
func NewPrivateStore(client *redis.Client) *PrivateStore {
	return &PrivateStore{client: client, keyPrefix: "seguros:private:"}
}

func (s *PrivateStore) GetPrivate(ctx context.Context, collection, key string) ([]byte, error) {
	value, err := s.client.HGet(ctx, s.keyPrefix+collection, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get private %s/%s: %w", collection, key, err)
	}
	return value, nil
}

func (s *PrivateStore) PutPrivate(ctx context.Context, collection, key string, value []byte) error {
	if err := s.client.HSet(ctx, s.keyPrefix+collection, key, value).Err(); err != nil {
		return fmt.Errorf("put private %s/%s: %w", collection, key, err)
	}
	return nil
}
