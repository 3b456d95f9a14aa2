// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

// Explanation factor types and their fixed texts.
const (
	FactorPreferenceMatch = "user_preference_match"
	FactorTrending        = "trending"

	preferenceMatchDescription = "Matches your historical preferences"
	trendingDescription        = "Currently trending in the marketplace"

	// trendingFactorScore is reported for every item; it is not computed.
	trendingFactorScore = 0.7
)

// DiversityScore returns the mean pairwise Euclidean distance between the
// embeddings of items. Pairs where either item has no embedding are skipped.
// Fewer than two items score 1.0.
func (m *Model) DiversityScore(items []Item) float64 {
	if len(items) < 2 {
		return 1.0
	}

	var total float64
	count := 0
	for i := 0; i < len(items); i++ {
		a, ok := m.Items[items[i].ID]
		if !ok {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			b, ok := m.Items[items[j].ID]
			if !ok {
				continue
			}
			total += a.Distance(b)
			count++
		}
	}

	return total / float64(max(count, 1))
}

// Explain lists the factors behind recommending itemID to userID.
// The preference factor is the raw dot product and is present only when
// both embeddings exist. The trending factor is always present.
func (m *Model) Explain(userID, itemID string) Explanation {
	ex := Explanation{
		UserID:  userID,
		ItemID:  itemID,
		Factors: make([]Factor, 0, 2),
	}

	u, okU := m.Users[userID]
	it, okI := m.Items[itemID]
	if okU && okI {
		ex.Factors = append(ex.Factors, Factor{
			Type:        FactorPreferenceMatch,
			Score:       u.Dot(it),
			Description: preferenceMatchDescription,
		})
	}

	ex.Factors = append(ex.Factors, Factor{
		Type:        FactorTrending,
		Score:       trendingFactorScore,
		Description: trendingDescription,
	})

	return ex
}
