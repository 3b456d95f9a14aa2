// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"math"
	"time"
)

// InteractionType identifies the kind of user engagement with an item.
type InteractionType string

// Interaction types recorded by the marketplace.
const (
	InteractionView     InteractionType = "view"
	InteractionLike     InteractionType = "like"
	InteractionPurchase InteractionType = "purchase"
	InteractionMint     InteractionType = "mint"
)

// Valid returns true if t is one of the known interaction types.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionView, InteractionLike, InteractionPurchase, InteractionMint:
		return true
	default:
		return false
	}
}

// Item is an NFT as seen by the engine. The engine never mutates items.
type Item struct {
	// ID is the unique identifier of the NFT.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is free text supplied by the creator.
	Description string `json:"description,omitempty"`

	// ImageURL references the NFT artwork.
	ImageURL string `json:"image_url"`

	// CreatorID identifies the minting user.
	CreatorID string `json:"creator_id"`

	// OwnerID identifies the current holder.
	OwnerID string `json:"owner_id"`

	// Tags is a deduplicated, unordered tag set. Use NewTags to build it.
	Tags []string `json:"tags"`

	// Attributes holds arbitrary trait metadata.
	Attributes map[string]any `json:"attributes,omitempty"`

	// Price is the listing price.
	Price float64 `json:"price"`

	// Views is the lifetime view counter.
	Views int64 `json:"views"`

	// Likes is the lifetime like counter.
	Likes int64 `json:"likes"`

	// CreatedAt is when the NFT was minted.
	CreatedAt time.Time `json:"created_at"`

	// Chain is the chain identifier (e.g. "polygonAmoy").
	Chain string `json:"chain"`

	// CollectionID is set when the NFT belongs to a collection.
	CollectionID *string `json:"collection_id,omitempty"`
}

// HasTag reports whether the item carries tag.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NewTags deduplicates tags while keeping first-seen order.
func NewTags(tags ...string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// PriceRange is a user's preferred price window.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultPriceRange is applied when a user has no stated preference.
var DefaultPriceRange = PriceRange{Min: 0, Max: 1000}

// Preferences captures what a user told us about their taste.
type Preferences struct {
	// PriceRange is nil when the user never set one.
	PriceRange *PriceRange `json:"price_range,omitempty"`

	// Categories is the optional list of preferred categories.
	Categories []string `json:"categories,omitempty"`
}

// EffectivePriceRange returns the stated range or DefaultPriceRange.
func (p Preferences) EffectivePriceRange() PriceRange {
	if p.PriceRange == nil {
		return DefaultPriceRange
	}
	return *p.PriceRange
}

// User is a marketplace account.
type User struct {
	ID            string      `json:"id"`
	WalletAddress string      `json:"wallet_address"`
	Preferences   Preferences `json:"preferences"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Interaction is a single weighted engagement event used as training input.
type Interaction struct {
	UserID    string          `json:"user_id"`
	ItemID    string          `json:"nft_id"`
	Type      InteractionType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Value     float64         `json:"value"`
}

// Embedding is a fixed-length feature vector for a user or an item.
type Embedding []float64

// Dot returns the dot product over the shared prefix of e and o.
func (e Embedding) Dot(o Embedding) float64 {
	n := len(e)
	if len(o) < n {
		n = len(o)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += e[i] * o[i]
	}
	return sum
}

// Norm returns the Euclidean norm.
func (e Embedding) Norm() float64 {
	return math.Sqrt(e.Dot(e))
}

// Distance returns the Euclidean distance between e and o.
func (e Embedding) Distance(o Embedding) float64 {
	n := len(e)
	if len(o) > n {
		n = len(o)
	}
	var sum float64
	for i := 0; i < n; i++ {
		var a, b float64
		if i < len(e) {
			a = e[i]
		}
		if i < len(o) {
			b = o[i]
		}
		d := a - b
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Clone returns an independent copy.
func (e Embedding) Clone() Embedding {
	if e == nil {
		return nil
	}
	out := make(Embedding, len(e))
	copy(out, e)
	return out
}

// ScoredItem is a recommended item with its score and human-readable reason.
type ScoredItem struct {
	Item   Item    `json:"item"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Query is the input handed to a Strategy.
type Query struct {
	// UserID is the user to recommend for. Trending ignores it.
	UserID string

	// Items is the candidate catalog in its original order.
	Items []Item

	// K is the number of results wanted.
	K int

	// Now is the evaluation time for recency terms.
	Now time.Time
}

// Strategy ranks candidate items for a user against a trained model.
// Implementations must be pure functions of the model and the query.
type Strategy interface {
	// Name returns the identifier used to select the strategy.
	Name() string

	// Recommend returns at most q.K items sorted by score descending.
	Recommend(m *Model, q Query) []ScoredItem
}

// Factor is one contribution in an explanation.
type Factor struct {
	Type        string  `json:"type"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// Explanation lists the factors behind recommending an item to a user.
type Explanation struct {
	UserID  string   `json:"user_id"`
	ItemID  string   `json:"nft_id"`
	Factors []Factor `json:"factors"`
}

// TrainingStatus represents the current training state.
type TrainingStatus struct {
	// IsTraining indicates whether training is currently in progress.
	IsTraining bool `json:"is_training"`

	// ModelVersion is the persisted version tag of the active model.
	ModelVersion string `json:"model_version"`

	// Generation increments every time a new snapshot is installed.
	Generation int64 `json:"generation"`

	// LastTrainedAt is when training last completed.
	LastTrainedAt time.Time `json:"last_trained_at"`

	// LastTrainingDurationMS is how long the last training took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// LastError contains the last training error, if any.
	LastError string `json:"last_error,omitempty"`

	UserCount        int `json:"user_count"`
	ItemCount        int `json:"item_count"`
	InteractionCount int `json:"interaction_count"`
}
