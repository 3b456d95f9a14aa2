// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN during pattern deletes.
const scanBatch = 100

// RedisConfig holds connection settings for RedisMemo.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// DialTimeout bounds connection setup, including the initial ping.
	DialTimeout time.Duration
}

// RedisMemo is a Memo backed by Redis.
type RedisMemo struct {
	client *redis.Client
}

// NewRedisMemo connects to Redis and pings it once.
// The caller decides whether a failed ping means falling back to LocalMemo.
func NewRedisMemo(ctx context.Context, cfg RedisConfig) (*RedisMemo, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck // ping error takes precedence
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}

	return &RedisMemo{client: client}, nil
}

// NewRedisMemoFromClient wraps an existing client without pinging it.
func NewRedisMemoFromClient(client *redis.Client) *RedisMemo {
	return &RedisMemo{client: client}
}

// Name returns "redis".
func (r *RedisMemo) Name() string { return "redis" }

// Get returns the stored value or ErrMiss.
func (r *RedisMemo) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set stores value under key. A ttl <= 0 keeps the key until deleted.
func (r *RedisMemo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeletePattern removes keys matching pattern using SCAN, so large key
// spaces never block the server the way KEYS would.
func (r *RedisMemo) DeletePattern(ctx context.Context, pattern string) (int, error) {
	deleted := 0
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("redis del: %w", err)
			}
			deleted += int(n)
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

// Ping checks the connection.
func (r *RedisMemo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Size returns DBSIZE.
func (r *RedisMemo) Size(ctx context.Context) (int64, error) {
	n, err := r.client.DBSize(ctx).Result()
	if err != nil {
		return 0, fmt.Errorf("redis dbsize: %w", err)
	}
	return n, nil
}

// Close closes the client.
func (r *RedisMemo) Close() error {
	return r.client.Close()
}
