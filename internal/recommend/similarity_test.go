// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"fmt"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		u, v Embedding
		want float64
	}{
		{"orthogonal", Embedding{1, 0}, Embedding{0, 1}, 0},
		{"parallel", Embedding{1, 2}, Embedding{2, 4}, 1},
		{"opposite", Embedding{1, 1}, Embedding{-1, -1}, -1},
		{"zero norm left", Embedding{0, 0}, Embedding{1, 1}, 0},
		{"zero norm right", Embedding{1, 1}, Embedding{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.u, tt.v); !approxEqual(got, tt.want) {
				t.Errorf("Cosine() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNewPairKey(t *testing.T) {
	k1, ok := NewPairKey(KindUser, "bob", "alice")
	if !ok {
		t.Fatal("NewPairKey() rejected distinct ids")
	}
	k2, _ := NewPairKey(KindUser, "alice", "bob")
	if k1 != k2 {
		t.Errorf("keys differ by argument order: %v vs %v", k1, k2)
	}
	if k1.String() != "user_alice_bob" {
		t.Errorf("String() = %q, want %q", k1.String(), "user_alice_bob")
	}

	if _, ok := NewPairKey(KindItem, "a", "a"); ok {
		t.Error("NewPairKey() accepted a self-pair")
	}

	itemKey, _ := NewPairKey(KindItem, "a", "b")
	if itemKey == (PairKey{Kind: KindUser, A: "a", B: "b"}) {
		t.Error("user and item pairs with the same ids must differ")
	}
}

func TestParsePairKey(t *testing.T) {
	known := func(ids ...string) func(Kind, string) bool {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		return func(_ Kind, id string) bool { return set[id] }
	}

	tests := []struct {
		name    string
		key     string
		known   func(Kind, string) bool
		want    PairKey
		wantErr bool
	}{
		{"user pair", "user_alice_bob", nil, PairKey{KindUser, "alice", "bob"}, false},
		{"item pair", "item_a_b", nil, PairKey{KindItem, "a", "b"}, false},
		{"legacy nft prefix", "nft_a_b", nil, PairKey{KindItem, "a", "b"}, false},
		{"reversed order is canonicalized", "item_b_a", nil, PairKey{KindItem, "a", "b"}, false},
		{"underscore id resolved by known ids", "item_x_y_z", known("x_y", "z"), PairKey{KindItem, "x_y", "z"}, false},
		{"underscore id in second position", "item_x_y_z", known("x", "y_z"), PairKey{KindItem, "x", "y_z"}, false},
		{"ambiguous without known ids", "item_x_y_z", nil, PairKey{}, true},
		{"unknown kind", "song_a_b", nil, PairKey{}, true},
		{"missing prefix", "alice", nil, PairKey{}, true},
		{"missing second id", "user_alice_", nil, PairKey{}, true},
		{"self-pair", "user_alice_alice", nil, PairKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePairKey(tt.key, tt.known)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePairKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePairKey(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestParsePairKey_RoundTrip(t *testing.T) {
	key, _ := NewPairKey(KindItem, "0xabc", "0xdef")
	got, err := ParsePairKey(key.String(), nil)
	if err != nil {
		t.Fatalf("ParsePairKey() error = %v", err)
	}
	if got != key {
		t.Errorf("round trip = %+v, want %+v", got, key)
	}
}

func TestSimilarityCache_Eager(t *testing.T) {
	cfg := DefaultConfig()
	users := map[string]Embedding{"u1": {1, 0}, "u2": {0, 1}, "u3": {1, 1}}
	items := map[string]Embedding{"i1": {1, 2}, "i2": {2, 4}}

	sc := NewSimilarityCache(cfg, users, items)

	if sc.Lazy() {
		t.Error("Lazy() = true in eager mode")
	}
	// 3 user pairs + 1 item pair
	if got := sc.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}

	if v, ok := sc.Get(KindItem, "i2", "i1"); !ok || !approxEqual(v, 1) {
		t.Errorf("Get(i2, i1) = (%f, %v), want (1, true)", v, ok)
	}
	if v, ok := sc.Get(KindUser, "u1", "u2"); !ok || v != 0 {
		t.Errorf("Get(u1, u2) = (%f, %v), want (0, true)", v, ok)
	}
	if _, ok := sc.Get(KindUser, "u1", "u1"); ok {
		t.Error("Get() returned a self-pair")
	}
	if _, ok := sc.Get(KindItem, "u1", "u2"); ok {
		t.Error("Get() crossed kinds")
	}

	for key := range sc.Entries() {
		if key.A >= key.B {
			t.Errorf("entry %v is not canonical", key)
		}
	}
}

func TestSimilarityCache_LazyMatchesEager(t *testing.T) {
	items := make(map[string]Embedding)
	for i := 0; i < 6; i++ {
		items[fmt.Sprintf("i%d", i)] = Embedding{float64(i), float64(6 - i), 1}
	}

	eager := NewSimilarityCache(DefaultConfig(), nil, items)

	cfg := DefaultConfig()
	cfg.Similarity.Mode = SimilarityLazy
	cfg.Similarity.LRUSize = 4
	lazy := NewSimilarityCache(cfg, nil, items)

	if !lazy.Lazy() {
		t.Fatal("Lazy() = false in lazy mode")
	}
	if got := lazy.Len(); got != 0 {
		t.Errorf("Len() before queries = %d, want 0", got)
	}

	for key, want := range eager.Entries() {
		got, ok := lazy.Get(KindItem, key.B, key.A)
		if !ok || got != want {
			t.Errorf("lazy Get(%v) = (%f, %v), want (%f, true)", key, got, ok, want)
		}
	}

	if got := lazy.Len(); got > 4 {
		t.Errorf("Len() = %d exceeds LRU size 4", got)
	}
	if _, ok := lazy.Get(KindItem, "i0", "missing"); ok {
		t.Error("Get() computed a pair with an unknown id")
	}
}

func TestSimilarityCache_MostSimilar(t *testing.T) {
	items := map[string]Embedding{
		"a": {1, 0},
		"b": {1, 0.1},
		"c": {0, 1},
		"d": {1, 0.1},
	}
	sc := NewSimilarityCache(DefaultConfig(), nil, items)

	got := sc.MostSimilar(KindItem, "a", 2)
	if len(got) != 2 {
		t.Fatalf("MostSimilar() returned %d neighbors, want 2", len(got))
	}
	// b and d tie; lexicographic order wins
	if got[0].ID != "b" || got[1].ID != "d" {
		t.Errorf("MostSimilar() = %+v, want b then d", got)
	}

	if got := sc.MostSimilar(KindItem, "missing", 3); got != nil {
		t.Errorf("MostSimilar(missing) = %+v, want nil", got)
	}
}
