// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"testing"
)

func TestTopK(t *testing.T) {
	items := []ScoredItem{
		{Item: Item{ID: "a"}, Score: 0.5},
		{Item: Item{ID: "b"}, Score: 0.9},
		{Item: Item{ID: "c"}, Score: 0.5},
		{Item: Item{ID: "d"}, Score: 0.1},
		{Item: Item{ID: "e"}, Score: 0.5},
	}

	got := TopK(items, 4)
	want := []string{"b", "a", "c", "e"}
	if len(got) != len(want) {
		t.Fatalf("TopK() returned %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Item.ID != want[i] {
			t.Errorf("TopK()[%d] = %q, want %q", i, got[i].Item.ID, want[i])
		}
	}

	if got := TopK(nil, 3); len(got) != 0 {
		t.Errorf("TopK(nil) = %v, want empty", got)
	}
	if got := TopK(items, 0); len(got) != 0 {
		t.Errorf("TopK(k=0) = %v, want empty", got)
	}
}

func TestCombineReasons(t *testing.T) {
	tests := []struct {
		name    string
		reasons []string
		want    string
	}{
		{"none", nil, ""},
		{"single", []string{"Trending now in the community"}, "Trending now in the community"},
		{"duplicates collapse", []string{"A thing", "A thing"}, "A thing"},
		{
			"two joined in first-seen order",
			[]string{"Users with similar taste also liked this", "Trending now in the community"},
			"Users with similar taste also liked this and trending now in the community",
		},
		{"two with repeats", []string{"First", "Second", "First"}, "First and second"},
		{"three collapse", []string{"A", "B", "C"}, MultipleFactorsReason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombineReasons(tt.reasons); got != tt.want {
				t.Errorf("CombineReasons() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSigmoid(t *testing.T) {
	if got := Sigmoid(0); got != 0.5 {
		t.Errorf("Sigmoid(0) = %f, want 0.5", got)
	}
	if got := Sigmoid(10); got <= 0.99 || got >= 1 {
		t.Errorf("Sigmoid(10) = %f, want close to 1", got)
	}
	if got := Sigmoid(-10); got >= 0.01 || got <= 0 {
		t.Errorf("Sigmoid(-10) = %f, want close to 0", got)
	}
}
