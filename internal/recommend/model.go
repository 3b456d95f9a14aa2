// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"time"
)

// Model is an immutable snapshot of trained state.
//
// Strategies and diagnostics only read a Model. Training builds a new one and
// the online updater replaces it with a copy that differs in one user vector,
// so a reader holding a *Model never observes a partial update.
type Model struct {
	// Version is the version tag written to persisted records.
	Version string

	// Users maps user id to embedding.
	Users map[string]Embedding

	// Items maps item id to embedding.
	Items map[string]Embedding

	// Similarity holds pairwise user and item similarities.
	Similarity *SimilarityCache

	// Matrix is the weighted interaction matrix. It is nil for restored models.
	Matrix *InteractionMatrix

	// TrainedAt is when the snapshot was built or, for restored models, saved.
	TrainedAt time.Time
}

// emptyModel is installed before the first training so reads never see nil.
func emptyModel(version string) *Model {
	return &Model{
		Version:    version,
		Users:      map[string]Embedding{},
		Items:      map[string]Embedding{},
		Similarity: &SimilarityCache{fixed: map[PairKey]float64{}},
	}
}

// Build trains a new snapshot from a full data set.
func Build(cfg *Config, users []User, items []Item, interactions []Interaction, now time.Time) *Model {
	userEmb := BuildUserEmbeddings(cfg, users, interactions)
	itemEmb := BuildItemEmbeddings(cfg, items, now)

	return &Model{
		Version:    cfg.Version,
		Users:      userEmb,
		Items:      itemEmb,
		Similarity: NewSimilarityCache(cfg, userEmb, itemEmb),
		Matrix:     BuildInteractionMatrix(cfg, users, items, interactions),
		TrainedAt:  now,
	}
}

// UserEmbedding returns the embedding of a user.
func (m *Model) UserEmbedding(id string) (Embedding, bool) {
	e, ok := m.Users[id]
	return e, ok
}

// ItemEmbedding returns the embedding of an item.
func (m *Model) ItemEmbedding(id string) (Embedding, bool) {
	e, ok := m.Items[id]
	return e, ok
}

// Trained reports whether the snapshot holds any embeddings.
func (m *Model) Trained() bool {
	return len(m.Users) > 0 || len(m.Items) > 0
}

// withUser returns a shallow copy of m where user id maps to e.
// Other embeddings and the similarity cache are shared.
func (m *Model) withUser(id string, e Embedding) *Model {
	users := make(map[string]Embedding, len(m.Users))
	for k, v := range m.Users {
		users[k] = v
	}
	users[id] = e

	next := *m
	next.Users = users
	return &next
}
