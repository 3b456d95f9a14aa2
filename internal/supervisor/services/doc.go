// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package services adapts server components to suture.Service.
//
//   - RecommendService restores or trains the model at startup, retrains on a
//     schedule and on demand, then persists the model and records the
//     training marker.
//   - InteractionService applies online embedding updates from a bounded queue.
//   - HTTPServerService runs an http.Server with graceful shutdown.
package services
