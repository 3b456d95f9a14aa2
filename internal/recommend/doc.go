// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package recommend implements the hybrid NFT recommendation engine.
//
// # Architecture
//
// Training turns users, items and interaction events into an immutable
// Model snapshot:
//
//   - Interaction matrix: weighted sums per (user, item), purchase > mint > like > view
//   - User embeddings: activity, price preference and category affinity
//   - Item embeddings: log-scaled popularity and price, category one-hot, recency
//   - Similarity cache: cosine similarity for every user pair and item pair
//
// Strategies rank candidate items against a snapshot. The strategies live in
// the algorithms subpackage and are registered by name:
//
//   - collaborative: sigmoid of the user/item embedding dot product
//   - content: tag overlap with the interest set
//   - trending: recency and popularity, needs no user
//   - hybrid: weighted fusion of the three with combined reasons
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, logger)
//	for _, s := range algorithms.Defaults(cfg) {
//	    engine.RegisterStrategy(s)
//	}
//
//	if err := engine.Fit(users, items, interactions); err != nil {
//	    return err
//	}
//	recs, err := engine.Recommend(ctx, "alice", items, 10, "hybrid")
//
// # Thread Safety
//
// The engine is safe for concurrent use. The active *Model is swapped
// wholesale under a write lock by training and by the online updater;
// readers take the read lock only to copy the pointer. A second concurrent
// Train or Fit fails fast with ErrTrainingInProgress.
//
// # Persistence
//
// SaveModel and LoadModel use a JSON record with the keys version,
// user_embeddings, item_embeddings, similarity_cache and timestamp.
// Similarity keys have the form "user_<a>_<b>" or "item_<a>_<b>" with a < b.
package recommend
