// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package metrics registers the service's Prometheus collectors.
//
// Collectors are package-level promauto globals registered with the default
// registry and served at /metrics. The Record* helpers keep label handling in
// one place:
//
//	start := time.Now()
//	recs, err := engine.Recommend(ctx, user, items, k, strategy)
//	metrics.RecordRecommendation(strategy, len(recs), time.Since(start), err)
//
// # Families
//
//   - nftgenie_api_*: HTTP requests, latency, in-flight gauge, rate-limit rejections
//   - nftgenie_recommend_*: per-strategy requests, latency, result sizes, fallbacks
//   - nftgenie_training_*: runs, duration, embedding and similarity counts, model generation
//   - nftgenie_online_updates_*: real-time embedding updates and queue drops
//   - nftgenie_memo_*: memo hits, misses, errors and invalidations
//   - nftgenie_db_*: query latency and errors
//   - nftgenie_circuit_breaker_*: data-layer breaker state and outcomes
package metrics
