// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package reranking

import (
	"math"
	"testing"
	"time"

	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

func scored(id string, score float64, tags ...string) recommend.ScoredItem {
	return recommend.ScoredItem{
		Item:  recommend.Item{ID: id, Tags: tags},
		Score: score,
	}
}

func ids(items []recommend.ScoredItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Item.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewMMR(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
		want   float64
	}{
		{"normal", 0.7, 0.7},
		{"zero", 0, 0},
		{"negative clamped", -0.5, 0},
		{"above one clamped", 1.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMMR(tt.lambda, nil)
			if m.Lambda() != tt.want {
				t.Errorf("Lambda() = %v, want %v", m.Lambda(), tt.want)
			}
			if m.Name() != "mmr" {
				t.Errorf("Name() = %q", m.Name())
			}
		})
	}
}

func TestMMR_Rerank(t *testing.T) {
	items := []recommend.ScoredItem{
		scored("a1", 1.0, "art"),
		scored("a2", 0.95, "art"),
		scored("g1", 0.9, "gaming"),
		scored("a3", 0.85, "art"),
		scored("m1", 0.8, "music"),
	}

	tests := []struct {
		name   string
		lambda float64
		k      int
		want   []string
	}{
		{"pure relevance keeps order", 1, 3, []string{"a1", "a2", "g1"}},
		{"balanced spreads tags", 0.5, 3, []string{"a1", "g1", "m1"}},
		{"k above len", 1, 10, []string{"a1", "a2", "g1", "a3", "m1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(NewMMR(tt.lambda, TagJaccard).Rerank(items, tt.k))
			if !equal(got, tt.want) {
				t.Errorf("Rerank = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMMR_RerankEmpty(t *testing.T) {
	m := NewMMR(0.5, nil)
	if got := m.Rerank(nil, 5); len(got) != 0 {
		t.Errorf("Rerank(nil) = %v", got)
	}
	if got := m.Rerank([]recommend.ScoredItem{scored("x", 1)}, 0); len(got) != 0 {
		t.Errorf("Rerank(k=0) = %v", got)
	}
}

func TestMMR_NegativeScores(t *testing.T) {
	items := []recommend.ScoredItem{scored("a", -0.1), scored("b", -0.5)}
	got := ids(NewMMR(0.5, nil).Rerank(items, 2))
	if !equal(got, []string{"a", "b"}) {
		t.Errorf("Rerank = %v, want [a b]", got)
	}
}

func TestTagJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"art"}, []string{"ART"}, 1},
		{"disjoint", []string{"art"}, []string{"music"}, 0},
		{"half", []string{"art", "music"}, []string{"art"}, 0.5},
		{"both empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := recommend.Item{Tags: tt.a}
			b := recommend.Item{Tags: tt.b}
			if got := TagJaccard(&a, &b); got != tt.want {
				t.Errorf("TagJaccard = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmbeddingCosine(t *testing.T) {
	cfg := recommend.DefaultConfig()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	catalog := []recommend.Item{
		{ID: "n1", Tags: []string{"art"}, Price: 10, Views: 100, Likes: 5, CreatedAt: now},
		{ID: "n2", Tags: []string{"art"}, Price: 10, Views: 100, Likes: 5, CreatedAt: now},
	}
	model := recommend.Build(cfg, nil, catalog, nil, now)
	sim := EmbeddingCosine(model)

	if got := sim(&catalog[0], &catalog[1]); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical items cosine = %v, want 1", got)
	}

	unknown := recommend.Item{ID: "zz", Tags: []string{"music"}}
	if got := sim(&catalog[0], &unknown); got != 0 {
		t.Errorf("unknown item should fall back to tags, got %v", got)
	}

	if got := EmbeddingCosine(nil)(&catalog[0], &catalog[1]); got != 1 {
		t.Errorf("nil model should use tags, got %v", got)
	}
}
