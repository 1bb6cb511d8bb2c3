package reserve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces reservation keys in Redis.
const keyPrefix = "goap:reserve:"

// RedisOptions configures the Redis-backed reservation manager.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TTL is the claim expiry. Zero means claims never expire and must
	// be released explicitly; a positive TTL protects against claims
	// orphaned by crashed agents.
	TTL time.Duration

	// ConnectTimeout is the maximum time to wait for connection
	// establishment. Defaults to 5s.
	ConnectTimeout time.Duration
}

// RedisManager implements Manager on Redis. Claims are plain keys
// written with SET NX, which gives at-most-one-claimant semantics
// across processes.
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager connects to Redis and verifies the connection.
func NewRedisManager(opts RedisOptions) (*RedisManager, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client, ttl: opts.TTL}, nil
}

// TryReserve implements Manager.
func (m *RedisManager) TryReserve(ctx context.Context, resource, agent string) (bool, error) {
	key := keyPrefix + resource

	ok, err := m.client.SetNX(ctx, key, agent, m.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claiming %s: %w", resource, err)
	}
	if ok {
		return true, nil
	}

	// Re-entrant: the claim may already be ours.
	holder, err := m.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// Claim expired between SETNX and GET; retry once.
		ok, err := m.client.SetNX(ctx, key, agent, m.ttl).Result()
		if err != nil {
			return false, fmt.Errorf("claiming %s: %w", resource, err)
		}
		return ok, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspecting claim on %s: %w", resource, err)
	}
	return holder == agent, nil
}

// Release implements Manager. Only the holding agent's claim is
// deleted; a stale release from a different agent is a no-op.
func (m *RedisManager) Release(ctx context.Context, resource, agent string) error {
	key := keyPrefix + resource

	holder, err := m.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspecting claim on %s: %w", resource, err)
	}
	if holder != agent {
		return nil
	}
	if err := m.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("releasing %s: %w", resource, err)
	}
	return nil
}

// IsAvailableFor implements Manager.
func (m *RedisManager) IsAvailableFor(ctx context.Context, resource, agent string) (bool, error) {
	holder, err := m.client.Get(ctx, keyPrefix+resource).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspecting claim on %s: %w", resource, err)
	}
	return holder == agent, nil
}

// Close closes the Redis connection.
func (m *RedisManager) Close() error {
	return m.client.Close()
}
