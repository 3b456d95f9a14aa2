// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package algorithms

import (
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// CollaborativeReason is attached to every collaborative result.
const CollaborativeReason = "Users with similar taste also liked this"

// Collaborative scores items by the sigmoid of the dot product between the
// user embedding and each item embedding.
//
//	score(u, i) = 1 / (1 + exp(-dot(e_u, e_i)))
//
// Items without an embedding are skipped.
type Collaborative struct {
	BaseStrategy
}

// NewCollaborative creates the collaborative strategy.
func NewCollaborative() *Collaborative {
	return &Collaborative{BaseStrategy: NewBaseStrategy(NameCollaborative)}
}

// Recommend returns the top q.K items for q.UserID.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (c *Collaborative) Recommend(m *recommend.Model, q recommend.Query) []recommend.ScoredItem {
	user, ok := m.UserEmbedding(q.UserID)
	if !ok {
		return []recommend.ScoredItem{}
	}

	scored := make([]recommend.ScoredItem, 0, len(q.Items))
	for i := range q.Items {
		item, ok := m.ItemEmbedding(q.Items[i].ID)
		if !ok {
			continue
		}
		scored = append(scored, recommend.ScoredItem{
			Item:   q.Items[i],
			Score:  recommend.Sigmoid(user.Dot(item)),
			Reason: CollaborativeReason,
		})
	}

	return recommend.TopK(scored, q.K)
}
