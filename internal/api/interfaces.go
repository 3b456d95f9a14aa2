// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"context"

	"github.com/Soumyadip-03/NFTGenie/internal/database"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// Engine is the part of *recommend.Engine the handlers use.
type Engine interface {
	Recommend(ctx context.Context, userID string, items []recommend.Item, k int, strategy string) ([]recommend.ScoredItem, error)
	Explain(userID, itemID string) recommend.Explanation
	SimilarItems(itemID string, k int) []recommend.Neighbor
	DiversityScore(items []recommend.Item) float64
	Stats() recommend.ModelStats
	GetStatus() recommend.TrainingStatus
	Snapshot() *recommend.Model
}

// Store is the part of *database.Store the handlers use.
type Store interface {
	Items(ctx context.Context) ([]recommend.Item, error)
	ResolveUserID(ctx context.Context, ref string) (string, error)
	OwnedItemIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	RecordInteraction(ctx context.Context, in recommend.Interaction) error
	InteractionStats(ctx context.Context) (database.InteractionStats, error)
	Ping(ctx context.Context) error
}

// InteractionQueue hands interactions to the online updater.
// Enqueue returns false when the queue is full.
type InteractionQueue interface {
	Enqueue(in recommend.Interaction) bool
}

// TrainTrigger starts a background training run.
// TriggerTraining returns false when a run is already in progress.
type TrainTrigger interface {
	TriggerTraining() bool
}

var (
	_ Engine = (*recommend.Engine)(nil)
	_ Store  = (*database.Store)(nil)
)
