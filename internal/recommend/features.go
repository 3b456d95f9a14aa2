// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"math"
	"time"
)

// affinityCategory receives the whole interaction value sum of a user.
// Tag-aware attribution needs an item lookup per interaction and is not done.
const affinityCategory = "art"

// InteractionMatrix is a dense user x item matrix of weighted interaction sums.
type InteractionMatrix struct {
	userIndex map[string]int
	itemIndex map[string]int
	values    [][]float64
	cols      int
}

// BuildInteractionMatrix accumulates weight(type)*value per (user, item) cell.
// Interactions that reference an unknown user or item are skipped.
func BuildInteractionMatrix(cfg *Config, users []User, items []Item, interactions []Interaction) *InteractionMatrix {
	m := &InteractionMatrix{
		userIndex: make(map[string]int, len(users)),
		itemIndex: make(map[string]int, len(items)),
		values:    make([][]float64, len(users)),
		cols:      len(items),
	}

	for i, u := range users {
		m.userIndex[u.ID] = i
	}
	for i, it := range items {
		m.itemIndex[it.ID] = i
	}
	for i := range m.values {
		m.values[i] = make([]float64, len(items))
	}

	for _, in := range interactions {
		u, ok := m.userIndex[in.UserID]
		if !ok {
			continue
		}
		n, ok := m.itemIndex[in.ItemID]
		if !ok {
			continue
		}
		m.values[u][n] += cfg.WeightFor(in.Type) * in.Value
	}

	return m
}

// Shape returns the number of rows and columns.
func (m *InteractionMatrix) Shape() (rows, cols int) {
	if m == nil {
		return 0, 0
	}
	return len(m.values), m.cols
}

// At returns the accumulated weight for a user and item, or 0 if either is unknown.
func (m *InteractionMatrix) At(userID, itemID string) float64 {
	if m == nil {
		return 0
	}
	u, ok := m.userIndex[userID]
	if !ok {
		return 0
	}
	n, ok := m.itemIndex[itemID]
	if !ok {
		return 0
	}
	return m.values[u][n]
}

// NonZero returns the number of cells with a non-zero weight.
func (m *InteractionMatrix) NonZero() int {
	if m == nil {
		return 0
	}
	count := 0
	for _, row := range m.values {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// BuildUserEmbeddings returns one embedding per user:
// [count/100, priceMin/1000, priceMax/1000, affinity(c)/10 for each category].
func BuildUserEmbeddings(cfg *Config, users []User, interactions []Interaction) map[string]Embedding {
	counts := make(map[string]int, len(users))
	sums := make(map[string]float64, len(users))
	for _, in := range interactions {
		counts[in.UserID]++
		sums[in.UserID] += in.Value
	}

	out := make(map[string]Embedding, len(users))
	for _, u := range users {
		pr := u.Preferences.EffectivePriceRange()

		e := make(Embedding, 0, cfg.UserDim())
		e = append(e,
			float64(counts[u.ID])/100.0,
			pr.Min/1000.0,
			pr.Max/1000.0,
		)
		for _, cat := range cfg.Categories {
			var affinity float64
			if cat == affinityCategory {
				affinity = sums[u.ID]
			}
			e = append(e, affinity/10.0)
		}
		out[u.ID] = e
	}

	return out
}

// BuildItemEmbeddings returns one embedding per item:
// [ln(1+views)/10, ln(1+likes)/5, ln(1+price)/10, one-hot categories, exp(-ageDays/30)].
// Age is evaluated once against now.
func BuildItemEmbeddings(cfg *Config, items []Item, now time.Time) map[string]Embedding {
	out := make(map[string]Embedding, len(items))
	for i := range items {
		it := &items[i]

		e := make(Embedding, 0, cfg.ItemDim())
		e = append(e,
			math.Log1p(float64(it.Views))/10.0,
			math.Log1p(float64(it.Likes))/5.0,
			math.Log1p(it.Price)/10.0,
		)
		for _, cat := range cfg.Categories {
			if it.HasTag(cat) {
				e = append(e, 1.0)
			} else {
				e = append(e, 0.0)
			}
		}
		e = append(e, math.Exp(-AgeDays(it.CreatedAt, now)/30.0))
		out[it.ID] = e
	}

	return out
}

// AgeDays returns the number of whole days elapsed between created and now.
// Items created in the future yield a negative age.
func AgeDays(created, now time.Time) float64 {
	return math.Floor(now.Sub(created).Hours() / 24)
}
