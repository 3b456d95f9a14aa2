// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package algorithms implements the ranking strategies for the hybrid engine.
//
// Each strategy implements the recommend.Strategy interface and is registered
// with the engine by name. Strategies are pure functions of a model snapshot
// and a query; they hold only configuration.
//
// # Strategies
//
//   - Collaborative: sigmoid(dot(user, item)) over item embeddings
//   - ContentBased: 0.7 * tag overlap with the interest set + 0.3 * 0.5
//   - Trending: 0.4 * exp(-ageDays/7) + 0.6 * min(1, (0.3*views + 0.7*likes)/1000)
//   - Hybrid: weighted fusion of the three with reason combining
//
// Collaborative and ContentBased return nothing for a user without an
// embedding. Trending needs no user and serves as the universal fallback.
//
// # Ordering
//
// Every strategy sorts with a stable sort, so items with equal scores keep
// the order in which they were supplied.
package algorithms
