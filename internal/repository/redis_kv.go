package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"github.com/go-redis/redis/v8"
	"github.com/nikolayk812/gomarket-cart/internal/port"
)

type redisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisClient accepts either a redis:// URL or a bare host:port and pings the server once.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if strings.Contains(addr, "://") {
		var err error
		opts, err = redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("client.Ping: %w", err), client.Close())
	}

	return client, nil
}

func NewRedis(client *redis.Client, prefix string) (port.KeyValueStore, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}

	return &redisKV{
		client: client,
		prefix: prefix,
	}, nil
}

func (r *redisKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

func (r *redisKV) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisKV) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}
