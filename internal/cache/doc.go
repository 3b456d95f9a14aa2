// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

/*
Package cache provides response memoization and a generic LRU.

# Memo

Memo is a byte-oriented key-value store with per-key TTL and glob
invalidation. Two implementations exist:

  - RedisMemo: go-redis client, SCAN+DEL for pattern deletes
  - LocalMemo: in-process map with lazy expiry and an optional cleanup loop

The API layer memoizes recommendation responses under
RecommendationKey(user, strategy, limit) for DefaultRecommendationTTL and
drops them with UserPattern(user) when the user records an interaction.
MarkTrained and LastTrained manage the "model_last_trained" marker used to
throttle retraining.

# LRU

LRU[K, V] is a bounded least-recently-used cache with optional TTL. The
recommendation engine uses it for lazily computed similarity pairs.

	lru := cache.NewLRU[string, float64](100000, 0)
	score := lru.GetOrAdd(key, func() float64 { return compute(key) })

# Thread Safety

All types are safe for concurrent use.
*/
package cache
