// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package reranking

import (
	"math"
	"strings"

	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// maxRerankSize bounds the pairwise similarity matrix.
const maxRerankSize = 1000

// Similarity returns a value in [0,1] for two items.
type Similarity func(a, b *recommend.Item) float64

// MMR implements Maximal Marginal Relevance reranking.
type MMR struct {
	lambda float64
	sim    Similarity
}

// NewMMR clamps lambda to [0,1]. A nil sim means TagJaccard.
func NewMMR(lambda float64, sim Similarity) *MMR {
	lambda = math.Max(0, math.Min(1, lambda))
	if sim == nil {
		sim = TagJaccard
	}
	return &MMR{lambda: lambda, sim: sim}
}

// Name returns "mmr".
func (m *MMR) Name() string {
	return "mmr"
}

// Lambda returns the relevance weight.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Rerank returns at most k items. Scores and reasons are kept; only the
// order and the cut change.
//
//nolint:gocritic // rangeValCopy: ScoredItem is small enough
func (m *MMR) Rerank(items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if len(items) == 0 || k <= 0 {
		return items[:0]
	}
	if len(items) > maxRerankSize {
		items = items[:maxRerankSize]
	}
	if k > len(items) {
		k = len(items)
	}
	if m.lambda >= 1 {
		return items[:k]
	}

	n := len(items)
	sims := make([][]float64, n)
	for i := range sims {
		sims[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := m.sim(&items[i].Item, &items[j].Item)
			sims[i][j], sims[j][i] = s, s
		}
	}

	selected := make([]recommend.ScoredItem, 0, k)
	picked := make([]bool, n)
	// maxSim[i] is the highest similarity of i to anything selected so far.
	maxSim := make([]float64, n)

	for len(selected) < k {
		best, bestScore := -1, math.Inf(-1)
		for i, item := range items {
			if picked[i] {
				continue
			}
			score := m.lambda*item.Score - (1-m.lambda)*maxSim[i]
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}

		picked[best] = true
		selected = append(selected, items[best])
		for i := range items {
			if sims[i][best] > maxSim[i] {
				maxSim[i] = sims[i][best]
			}
		}
	}
	return selected
}

// TagJaccard is the Jaccard index of the lower-cased tag sets.
func TagJaccard(a, b *recommend.Item) float64 {
	if len(a.Tags) == 0 && len(b.Tags) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a.Tags))
	for _, t := range a.Tags {
		setA[strings.ToLower(t)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b.Tags))
	for _, t := range b.Tags {
		setB[strings.ToLower(t)] = struct{}{}
	}

	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// EmbeddingCosine compares item embeddings of m, clamped to [0,1]. Items
// missing from the model are compared with TagJaccard.
func EmbeddingCosine(m *recommend.Model) Similarity {
	return func(a, b *recommend.Item) float64 {
		if m == nil {
			return TagJaccard(a, b)
		}
		ea, okA := m.ItemEmbedding(a.ID)
		eb, okB := m.ItemEmbedding(b.ID)
		if !okA || !okB {
			return TagJaccard(a, b)
		}
		return math.Max(0, recommend.Cosine(ea, eb))
	}
}
