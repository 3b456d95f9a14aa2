// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"math"
	"sort"
	"strings"
)

// MultipleFactorsReason replaces three or more distinct reasons.
const MultipleFactorsReason = "Personalized for you based on multiple factors"

// TopK sorts items by score descending and truncates to k.
// The sort is stable: equal scores keep their input order.
func TopK(items []ScoredItem, k int) []ScoredItem {
	if k <= 0 {
		return []ScoredItem{}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > k {
		items = items[:k]
	}
	return items
}

// CombineReasons merges the reasons collected for one item.
// Duplicates are dropped keeping first-seen order. One reason is returned as
// is, two are joined as "A and b", more collapse to MultipleFactorsReason.
func CombineReasons(reasons []string) string {
	unique := make([]string, 0, len(reasons))
	seen := make(map[string]struct{}, len(reasons))
	for _, r := range reasons {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		unique = append(unique, r)
	}

	switch len(unique) {
	case 0:
		return ""
	case 1:
		return unique[0]
	case 2:
		return unique[0] + " and " + strings.ToLower(unique[1])
	default:
		return MultipleFactorsReason
	}
}

// Sigmoid maps x into (0, 1).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
