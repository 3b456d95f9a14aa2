// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package algorithms

import (
	"math"
	"time"

	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// TrendingReason is attached to every trending result.
const TrendingReason = "Trending now in the community"

const (
	trendingRecencyWeight    = 0.4
	trendingPopularityWeight = 0.6
	trendingRecencyDays      = 7.0
	trendingViewWeight       = 0.3
	trendingLikeWeight       = 0.7
	trendingPopularityScale  = 1000.0
)

// Trending ranks items by recency and popularity. It ignores the user and
// the model, which makes it the fallback for cold-start users and failures.
//
//	recency    = exp(-ageDays / 7)
//	popularity = min(1, (0.3*views + 0.7*likes) / 1000)
//	score      = 0.4*recency + 0.6*popularity
type Trending struct {
	BaseStrategy
}

// NewTrending creates the trending strategy.
func NewTrending() *Trending {
	return &Trending{BaseStrategy: NewBaseStrategy(NameTrending)}
}

// Recommend returns the top q.K items by trend score.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (t *Trending) Recommend(_ *recommend.Model, q recommend.Query) []recommend.ScoredItem {
	scored := make([]recommend.ScoredItem, 0, len(q.Items))
	for i := range q.Items {
		scored = append(scored, recommend.ScoredItem{
			Item:   q.Items[i],
			Score:  TrendScore(&q.Items[i], q.Now),
			Reason: TrendingReason,
		})
	}
	return recommend.TopK(scored, q.K)
}

// TrendScore returns the trending score of a single item at now.
func TrendScore(item *recommend.Item, now time.Time) float64 {
	recency := math.Exp(-recommend.AgeDays(item.CreatedAt, now) / trendingRecencyDays)
	popularity := (float64(item.Views)*trendingViewWeight + float64(item.Likes)*trendingLikeWeight) / trendingPopularityScale
	return recency*trendingRecencyWeight + math.Min(popularity, 1.0)*trendingPopularityWeight
}
