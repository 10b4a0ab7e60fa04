package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "signin-flow:"

// RedisStore keeps pending flows in Redis so a callback can land on any
// relay instance. Consume relies on GETDEL for single-use semantics.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("state: redis ping: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func key(state string) string {
	return keyPrefix + state
}

func (r *RedisStore) Create(ctx context.Context, f Flow) error {
	if f.State == "" {
		return fmt.Errorf("state: missing state value")
	}
	ttl := time.Until(f.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("state: expires_at must be in the future")
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("state: marshal flow: %w", err)
	}

	return r.client.Set(ctx, key(f.State), data, ttl).Err()
}

func (r *RedisStore) Consume(ctx context.Context, state string) (*Flow, error) {
	val, err := r.client.GetDel(ctx, key(state)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var f Flow
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		return nil, fmt.Errorf("state: unmarshal flow: %w", err)
	}

	return &f, nil
}

func (r *RedisStore) Delete(ctx context.Context, state string) error {
	return r.client.Del(ctx, key(state)).Err()
}

// Close releases the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
