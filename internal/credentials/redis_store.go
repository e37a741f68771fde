package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix is the prefix for all grant keys in Redis.
const DefaultRedisKeyPrefix = "voicedesk:grant:"

// RedisStore persists grants in Redis. Grants carry refresh tokens and
// must outlive their access-token expiry, so keys are stored without a
// TTL.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	sealer    *Sealer
}

// NewRedisStore creates a RedisStore from a Redis URL
// (e.g. "redis://localhost:6379/0"). If sealer is non-nil, blobs are
// encrypted at rest.
func NewRedisStore(ctx context.Context, url, keyPrefix string, sealer *Sealer) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, sealer: sealer}, nil
}

func (s *RedisStore) key(tenant string) string {
	return s.keyPrefix + sanitizeTenant(tenant)
}

// Load returns the stored grant for a tenant, or ErrNotFound.
func (s *RedisStore) Load(ctx context.Context, tenant string) (*Grant, error) {
	data, err := s.client.Get(ctx, s.key(tenant)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load grant from redis: %w", err)
	}
	plain, err := open(s.sealer, data)
	if err != nil {
		return nil, err
	}
	return DecodeGrant(plain)
}

// Save persists the grant for a tenant.
func (s *RedisStore) Save(ctx context.Context, tenant string, g *Grant) error {
	data, err := g.Encode()
	if err != nil {
		return err
	}
	sealed, err := seal(s.sealer, data)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(tenant), sealed, 0).Err(); err != nil {
		return fmt.Errorf("failed to save grant to redis: %w", err)
	}
	return nil
}

// Delete removes the grant for a tenant.
func (s *RedisStore) Delete(ctx context.Context, tenant string) error {
	if err := s.client.Del(ctx, s.key(tenant)).Err(); err != nil {
		return fmt.Errorf("failed to delete grant from redis: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
