// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package algorithms

import (
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// Hybrid fuses the collaborative, content and trending strategies.
//
// It requests 2k candidates from collaborative and content and k from
// trending, then accumulates per item:
//
//	score(i) = w_c * collab(i) + w_k * content(i) + w_t * trending(i)
//
// A component that did not return an item contributes zero. Reasons are
// merged with recommend.CombineReasons in the order they were collected.
type Hybrid struct {
	BaseStrategy

	collaborative recommend.Strategy
	content       recommend.Strategy
	trending      recommend.Strategy
	weights       recommend.FusionWeights
}

// NewHybrid creates the hybrid strategy from its three components.
func NewHybrid(collaborative, content, trending recommend.Strategy, weights recommend.FusionWeights) *Hybrid {
	return &Hybrid{
		BaseStrategy:  NewBaseStrategy(NameHybrid),
		collaborative: collaborative,
		content:       content,
		trending:      trending,
		weights:       weights,
	}
}

// fused accumulates one item's score and reasons.
type fused struct {
	item    recommend.Item
	score   float64
	reasons []string
}

// Recommend returns the top q.K fused items for q.UserID.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (h *Hybrid) Recommend(m *recommend.Model, q recommend.Query) []recommend.ScoredItem {
	wide := q
	wide.K = q.K * 2

	// Insertion order is first-seen: collaborative, then content, then trending.
	order := make([]string, 0, len(q.Items))
	acc := make(map[string]*fused, len(q.Items))

	add := func(results []recommend.ScoredItem, weight float64) {
		for i := range results {
			r := &results[i]
			f, ok := acc[r.Item.ID]
			if !ok {
				f = &fused{item: r.Item}
				acc[r.Item.ID] = f
				order = append(order, r.Item.ID)
			}
			f.score += r.Score * weight
			f.reasons = append(f.reasons, r.Reason)
		}
	}

	add(h.collaborative.Recommend(m, wide), h.weights.Collaborative)
	add(h.content.Recommend(m, wide), h.weights.Content)
	add(h.trending.Recommend(m, q), h.weights.Trending)

	out := make([]recommend.ScoredItem, 0, len(order))
	for _, id := range order {
		f := acc[id]
		out = append(out, recommend.ScoredItem{
			Item:   f.item,
			Score:  f.score,
			Reason: recommend.CombineReasons(f.reasons),
		})
	}

	return recommend.TopK(out, q.K)
}
