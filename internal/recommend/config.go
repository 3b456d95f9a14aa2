// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"fmt"
	"time"
)

// Similarity cache population modes.
const (
	SimilarityEager = "eager"
	SimilarityLazy  = "lazy"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Version is the model version tag written by SaveModel.
	Version string `json:"version"`

	// Categories is the ordered category list that fixes embedding layout.
	// User embeddings have 3+len(Categories) dimensions, items one more.
	Categories []string `json:"categories"`

	// InterestTags is the tag set the content strategy matches against.
	InterestTags []string `json:"interest_tags"`

	// InteractionWeights maps interaction types to matrix weights.
	// Types missing from the map weigh DefaultInteractionWeight.
	InteractionWeights map[InteractionType]float64 `json:"interaction_weights"`

	// DefaultInteractionWeight applies to unrecognized interaction types.
	DefaultInteractionWeight float64 `json:"default_interaction_weight"`

	// Fusion contains the hybrid strategy weights.
	Fusion FusionWeights `json:"fusion"`

	// Similarity controls how the pairwise similarity cache is populated.
	Similarity SimilarityConfig `json:"similarity"`

	// Online contains parameters for real-time embedding updates.
	Online OnlineConfig `json:"online"`

	// Training contains training parameters.
	Training TrainingConfig `json:"training"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Seed is the random seed for deterministic behavior.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// FusionWeights defines the relative contribution of each strategy in hybrid mode.
type FusionWeights struct {
	Collaborative float64 `json:"collaborative"`
	Content       float64 `json:"content"`
	Trending      float64 `json:"trending"`
}

// SimilarityConfig selects eager or lazy similarity computation.
type SimilarityConfig struct {
	// Mode is "eager" (all pairs after training) or "lazy" (on demand, LRU bounded).
	Mode string `json:"mode"`

	// LRUSize bounds the number of lazily computed pairs.
	LRUSize int `json:"lru_size"`
}

// OnlineConfig contains parameters for the real-time updater.
type OnlineConfig struct {
	// Decay multiplies the previous embedding.
	Decay float64 `json:"decay"`

	// NoiseScale multiplies the standard-normal perturbation.
	NoiseScale float64 `json:"noise_scale"`
}

// TrainingConfig contains training parameters.
type TrainingConfig struct {
	// MinInteractions is the minimum number of interactions needed to train.
	MinInteractions int `json:"min_interactions"`

	// Timeout bounds data loading for a training run.
	Timeout time.Duration `json:"timeout"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of results when the caller passes k <= 0.
	DefaultK int `json:"default_k"`

	// MaxK caps the number of results per request.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns a configuration reproducing the reference scoring behavior.
func DefaultConfig() *Config {
	return &Config{
		Version:      "1.0.0",
		Categories:   []string{"art", "gaming", "music", "collectible"},
		InterestTags: []string{"art", "collectible"},
		InteractionWeights: map[InteractionType]float64{
			InteractionPurchase: 5.0,
			InteractionMint:     4.0,
			InteractionLike:     2.0,
			InteractionView:     1.0,
		},
		DefaultInteractionWeight: 1.0,
		Fusion: FusionWeights{
			Collaborative: 0.4,
			Content:       0.3,
			Trending:      0.3,
		},
		Similarity: SimilarityConfig{
			Mode:    SimilarityEager,
			LRUSize: 100000,
		},
		Online: OnlineConfig{
			Decay:      0.95,
			NoiseScale: 0.05,
		},
		Training: TrainingConfig{
			MinInteractions: 0,
			Timeout:         5 * time.Minute,
		},
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     100,
		},
		Seed: 42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version must not be empty")
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("categories must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if cat == "" {
			return fmt.Errorf("categories must not contain empty names")
		}
		if _, dup := seen[cat]; dup {
			return fmt.Errorf("categories contains duplicate %q", cat)
		}
		seen[cat] = struct{}{}
	}

	for t, w := range c.InteractionWeights {
		if w < 0 {
			return fmt.Errorf("interaction_weights[%s] must be non-negative, got %f", t, w)
		}
	}
	if c.DefaultInteractionWeight < 0 {
		return fmt.Errorf("default_interaction_weight must be non-negative, got %f", c.DefaultInteractionWeight)
	}

	if c.Fusion.Collaborative < 0 || c.Fusion.Content < 0 || c.Fusion.Trending < 0 {
		return fmt.Errorf("fusion weights must be non-negative")
	}

	switch c.Similarity.Mode {
	case SimilarityEager:
	case SimilarityLazy:
		if c.Similarity.LRUSize < 1 {
			return fmt.Errorf("similarity.lru_size must be positive in lazy mode, got %d", c.Similarity.LRUSize)
		}
	default:
		return fmt.Errorf("similarity.mode must be %q or %q, got %q", SimilarityEager, SimilarityLazy, c.Similarity.Mode)
	}

	if c.Online.Decay < 0 || c.Online.Decay > 1 {
		return fmt.Errorf("online.decay must be in [0, 1], got %f", c.Online.Decay)
	}
	if c.Online.NoiseScale < 0 {
		return fmt.Errorf("online.noise_scale must be non-negative, got %f", c.Online.NoiseScale)
	}

	if c.Training.MinInteractions < 0 {
		return fmt.Errorf("training.min_interactions must be non-negative, got %d", c.Training.MinInteractions)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive, got %v", c.Training.Timeout)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Categories = append([]string(nil), c.Categories...)
	clone.InterestTags = append([]string(nil), c.InterestTags...)
	clone.InteractionWeights = make(map[InteractionType]float64, len(c.InteractionWeights))
	for k, v := range c.InteractionWeights {
		clone.InteractionWeights[k] = v
	}
	return &clone
}

// WeightFor returns the matrix weight for an interaction type.
func (c *Config) WeightFor(t InteractionType) float64 {
	if w, ok := c.InteractionWeights[t]; ok {
		return w
	}
	return c.DefaultInteractionWeight
}

// UserDim returns the user embedding dimension.
func (c *Config) UserDim() int {
	return 3 + len(c.Categories)
}

// ItemDim returns the item embedding dimension.
func (c *Config) ItemDim() int {
	return 3 + len(c.Categories) + 1
}
