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
)

// ErrMiss is returned by Memo.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// DefaultRecommendationTTL is how long memoized recommendation responses stay fresh.
const DefaultRecommendationTTL = 300 * time.Second

// LastTrainedKey stores the RFC 3339 timestamp of the last completed training run.
const LastTrainedKey = "model_last_trained"

// Memo is a key-value store for response memoization.
// Both RedisMemo and LocalMemo implement this interface, so the API layer
// can switch backends without code changes.
//
// Usage:
//
//	var m Memo = NewLocalMemo(time.Minute)
//	_ = m.Set(ctx, RecommendationKey("alice", "hybrid", 10), payload, DefaultRecommendationTTL)
//	if data, err := m.Get(ctx, key); err == nil {
//	    // use data
//	}
type Memo interface {
	// Get returns the stored value or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) (int, error)

	// Ping checks backend availability.
	Ping(ctx context.Context) error

	// Size returns the number of stored keys.
	Size(ctx context.Context) (int64, error)

	// Name identifies the backend.
	Name() string
}

// RecommendationKey builds the memo key for a recommendation response.
func RecommendationKey(userID, strategy string, limit int) string {
	return fmt.Sprintf("recommendations:%s:%s:%d", userID, strategy, limit)
}

// UserPattern matches every memoized recommendation for a user.
func UserPattern(userID string) string {
	return fmt.Sprintf("recommendations:%s:*", userID)
}

// MarkTrained records t as the last training time.
func MarkTrained(ctx context.Context, m Memo, t time.Time) error {
	return m.Set(ctx, LastTrainedKey, []byte(t.UTC().Format(time.RFC3339Nano)), 0)
}

// LastTrained returns the last recorded training time.
// The boolean is false when no training has been recorded.
func LastTrained(ctx context.Context, m Memo) (time.Time, bool, error) {
	data, err := m.Get(ctx, LastTrainedKey)
	if errors.Is(err, ErrMiss) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	t, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", LastTrainedKey, err)
	}
	return t, true, nil
}
