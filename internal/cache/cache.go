// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// entry represents a cached value with expiration
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// LocalMemo is a thread-safe in-memory Memo with TTL support.
// It is used when Redis is disabled or unreachable, and in tests.
type LocalMemo struct {
	mu      sync.RWMutex
	entries map[string]entry
	stats   Stats
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLocalMemo creates an in-memory memo.
//
// A background goroutine removes expired entries every cleanupInterval.
// Pass zero to disable background cleanup; expired entries are still
// dropped lazily on read.
func NewLocalMemo(cleanupInterval time.Duration) *LocalMemo {
	m := &LocalMemo{
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	m.stats.LastCleanup = m.now()

	if cleanupInterval > 0 {
		go m.cleanupLoop(cleanupInterval)
	}

	return m
}

// Get retrieves a value. Expired entries are removed and reported as ErrMiss.
func (m *LocalMemo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.entries[key]
	if !exists {
		m.stats.Misses++
		return nil, ErrMiss
	}

	if m.isExpired(e) {
		delete(m.entries, key)
		m.stats.Misses++
		m.stats.Evictions++
		return nil, ErrMiss
	}

	m.stats.Hits++
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

// Set stores a value. A ttl <= 0 keeps the entry until deleted.
func (m *LocalMemo) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry{data: data, expiresAt: expiresAt}
	m.stats.TotalKeys = int64(len(m.entries))
	m.mu.Unlock()

	return nil
}

// DeletePattern removes every key matching a glob pattern such as
// "recommendations:alice:*" and returns how many were removed.
func (m *LocalMemo) DeletePattern(_ context.Context, pattern string) (int, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
			removed++
		}
	}
	m.stats.Evictions += int64(removed)
	m.stats.TotalKeys = int64(len(m.entries))

	return removed, nil
}

// Ping always succeeds for the in-memory memo.
func (m *LocalMemo) Ping(context.Context) error {
	return nil
}

// Size returns the number of stored entries, including not-yet-collected expired ones.
func (m *LocalMemo) Size(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.entries)), nil
}

// Name identifies the backend in logs and health output.
func (m *LocalMemo) Name() string {
	return "memory"
}

// Close stops the background cleanup goroutine.
func (m *LocalMemo) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// GetStats returns a snapshot of current cache performance statistics.
func (m *LocalMemo) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// HitRate returns the cache hit rate as a percentage
func (m *LocalMemo) HitRate() float64 {
	stats := m.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (m *LocalMemo) isExpired(e entry) bool {
	return !e.expiresAt.IsZero() && m.now().After(e.expiresAt)
}

// cleanupLoop periodically removes expired entries
func (m *LocalMemo) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// cleanup removes all expired entries
func (m *LocalMemo) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, e := range m.entries {
		if m.isExpired(e) {
			delete(m.entries, key)
			m.stats.Evictions++
		}
	}
	m.stats.TotalKeys = int64(len(m.entries))
	m.stats.LastCleanup = m.now()
}
