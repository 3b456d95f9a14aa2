// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package algorithms

import (
	"strings"

	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

const (
	contentTagWeight       = 0.7
	contentAttributeWeight = 0.3

	// contentAttributeScore is a flat attribute match score; attributes are not compared yet.
	contentAttributeScore = 0.5

	contentFallbackReason = "Similar to items you've viewed"
	contentInterestPrefix = "Matches your interest in "
)

// DefaultInterestTags is the interest set used when none is configured.
var DefaultInterestTags = []string{"art", "collectible"}

// ContentBased scores items by tag overlap with a fixed interest set.
//
//	score(i) = 0.7 * |tags(i) ∩ interest| / max(|interest|, 1) + 0.3 * 0.5
//
// Every candidate is scored, including items without an embedding, but only
// for users that have an embedding.
type ContentBased struct {
	BaseStrategy

	// interest keeps configured order for reason text
	interest []string
}

// ContentConfig contains configuration for content-based scoring.
type ContentConfig struct {
	// InterestTags is the tag set matched against item tags.
	InterestTags []string
}

// NewContentBased creates the content strategy.
func NewContentBased(cfg ContentConfig) *ContentBased {
	tags := cfg.InterestTags
	if len(tags) == 0 {
		tags = DefaultInterestTags
	}
	return &ContentBased{
		BaseStrategy: NewBaseStrategy(NameContent),
		interest:     recommend.NewTags(tags...),
	}
}

// InterestTags returns the deduplicated interest set in configured order.
func (c *ContentBased) InterestTags() []string {
	return append([]string(nil), c.interest...)
}

// Recommend returns the top q.K items for q.UserID.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (c *ContentBased) Recommend(m *recommend.Model, q recommend.Query) []recommend.ScoredItem {
	if _, ok := m.UserEmbedding(q.UserID); !ok {
		return []recommend.ScoredItem{}
	}

	denom := float64(max(len(c.interest), 1))
	scored := make([]recommend.ScoredItem, 0, len(q.Items))
	for i := range q.Items {
		overlap := c.overlap(&q.Items[i])
		tagScore := float64(len(overlap)) / denom

		scored = append(scored, recommend.ScoredItem{
			Item:   q.Items[i],
			Score:  tagScore*contentTagWeight + contentAttributeScore*contentAttributeWeight,
			Reason: contentReason(overlap),
		})
	}

	return recommend.TopK(scored, q.K)
}

// overlap returns the interest tags carried by item, in interest order.
func (c *ContentBased) overlap(item *recommend.Item) []string {
	var out []string
	for _, tag := range c.interest {
		if item.HasTag(tag) {
			out = append(out, tag)
		}
	}
	return out
}

func contentReason(overlap []string) string {
	if len(overlap) == 0 {
		return contentFallbackReason
	}
	return contentInterestPrefix + strings.Join(overlap, ", ")
}
