// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package algorithms

import (
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// Strategy names.
const (
	NameCollaborative = "collaborative"
	NameContent       = "content"
	NameTrending      = "trending"
	NameHybrid        = "hybrid"
)

// BaseStrategy provides the name shared by all strategies.
type BaseStrategy struct {
	name string
}

// NewBaseStrategy creates a base strategy with the given name.
func NewBaseStrategy(name string) BaseStrategy {
	return BaseStrategy{name: name}
}

// Name returns the strategy identifier.
func (b *BaseStrategy) Name() string {
	return b.name
}

// Defaults builds the four standard strategies from an engine config.
// Hybrid is last so it can be registered after its components.
func Defaults(cfg *recommend.Config) []recommend.Strategy {
	collab := NewCollaborative()
	content := NewContentBased(ContentConfig{InterestTags: cfg.InterestTags})
	trending := NewTrending()
	hybrid := NewHybrid(collab, content, trending, cfg.Fusion)

	return []recommend.Strategy{collab, content, trending, hybrid}
}

// Ensure all strategies implement the interface.
var (
	_ recommend.Strategy = (*Collaborative)(nil)
	_ recommend.Strategy = (*ContentBased)(nil)
	_ recommend.Strategy = (*Trending)(nil)
	_ recommend.Strategy = (*Hybrid)(nil)
)
