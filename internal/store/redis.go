package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"twtr.dev/backend/internal/obs"
)

const redisPort = "6379"

// Redis adapts a Redis client to the Store contract. Documents are
// stored as marshaled JSON under flat string keys; enumeration uses
// SCAN. The adapter holds no cache: every call is a live round trip
// bounded by the client's timeouts.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the store at the given host on the standard port.
func NewRedis(host string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(host, redisPort),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &Redis{client: client}
}

// NewRedisWithClient wraps an existing client. Used by tests.
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Ping reports whether the store is reachable. Used by the readiness
// probe only.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", key, err)
	}
	err = r.client.Set(ctx, key, data, 0).Err()
	obs.ObserveStoreOp("put", err)
	if err != nil {
		return fmt.Errorf("%w: set %q: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, key string) (json.RawMessage, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		obs.ObserveStoreOp("get", nil)
		return nil, ErrNotFound
	}
	obs.ObserveStoreOp("get", err)
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %v", ErrUnavailable, key, err)
	}
	return json.RawMessage(data), nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	obs.ObserveStoreOp("delete", err)
	if err != nil {
		return fmt.Errorf("%w: del %q: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (r *Redis) ListAll(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	err := r.scanAll(ctx, func(key string) error {
		data, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// Deleted between SCAN and GET; skip.
			return nil
		}
		if err != nil {
			return err
		}
		out[key] = json.RawMessage(data)
		return nil
	})
	obs.ObserveStoreOp("list_all", err)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrUnavailable, err)
	}
	return out, nil
}

// PurgeAll reads and deletes every key, returning the pre-deletion
// snapshot. Deletion is per key, not atomic across the store: a write
// racing with an in-progress purge may be deleted without appearing in
// the snapshot. That race is accepted behavior.
func (r *Redis) PurgeAll(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	err := r.scanAll(ctx, func(key string) error {
		data, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return err
		}
		out[key] = json.RawMessage(data)
		return nil
	})
	obs.ObserveStoreOp("purge_all", err)
	if err != nil {
		return nil, fmt.Errorf("%w: purge: %v", ErrUnavailable, err)
	}
	return out, nil
}

func (r *Redis) scanAll(ctx context.Context, visit func(key string) error) error {
	iter := r.client.Scan(ctx, 0, "*", 0).Iterator()
	for iter.Next(ctx) {
		if err := visit(iter.Val()); err != nil {
			return err
		}
	}
	return iter.Err()
}
