// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeModel(t *testing.T) {
	cfg := DefaultConfig()
	m := Build(cfg, testUsers(), testItems(), testInteractions(), testNow)
	savedAt := testNow.Add(time.Minute)

	var buf bytes.Buffer
	if err := EncodeModel(&buf, m, savedAt); err != nil {
		t.Fatalf("EncodeModel() error = %v", err)
	}

	out := buf.String()
	for _, key := range []string{`"version"`, `"user_embeddings"`, `"item_embeddings"`, `"similarity_cache"`, `"timestamp"`, `"user_alice_bob"`, `"item_a_b"`} {
		if !strings.Contains(out, key) {
			t.Errorf("encoded record is missing %s", key)
		}
	}

	got, err := DecodeModel(&buf, cfg)
	if err != nil {
		t.Fatalf("DecodeModel() error = %v", err)
	}

	if got.Version != m.Version {
		t.Errorf("Version = %q, want %q", got.Version, m.Version)
	}
	if !got.TrainedAt.Equal(savedAt) {
		t.Errorf("TrainedAt = %v, want %v", got.TrainedAt, savedAt)
	}
	for id, e := range m.Users {
		if !embeddingsEqual(got.Users[id], e) {
			t.Errorf("user %s = %v, want %v", id, got.Users[id], e)
		}
	}
	for id, e := range m.Items {
		if !embeddingsEqual(got.Items[id], e) {
			t.Errorf("item %s = %v, want %v", id, got.Items[id], e)
		}
	}

	want := m.Similarity.Entries()
	entries := got.Similarity.Entries()
	if len(entries) != len(want) {
		t.Fatalf("similarity entries = %d, want %d", len(entries), len(want))
	}
	for key, v := range want {
		if !approxEqual(entries[key], v) {
			t.Errorf("similarity %v = %f, want %f", key, entries[key], v)
		}
	}
	if got.Matrix != nil {
		t.Error("restored model should not carry an interaction matrix")
	}
}

func TestDecodeModel_LegacyRecord(t *testing.T) {
	record := `{
		"version": "0.9.0",
		"user_embeddings": {"u1": [0.1, 0.2], "u2": [0.3, 0.4]},
		"nft_embeddings": {"n_1": [1, 0], "n2": [0, 1]},
		"similarity_cache": {"user_u1_u2": 0.98, "nft_n_1_n2": 0.0},
		"timestamp": "2026-01-15T12:00:00.123456"
	}`

	m, err := DecodeModel(strings.NewReader(record), DefaultConfig())
	if err != nil {
		t.Fatalf("DecodeModel() error = %v", err)
	}

	if m.Version != "0.9.0" {
		t.Errorf("Version = %q, want 0.9.0", m.Version)
	}
	if len(m.Items) != 2 {
		t.Errorf("items = %d, want 2", len(m.Items))
	}
	if v, ok := m.Similarity.Get(KindItem, "n2", "n_1"); !ok || v != 0 {
		t.Errorf("Get(n2, n_1) = (%f, %v), want (0, true)", v, ok)
	}
	if v, ok := m.Similarity.Get(KindUser, "u1", "u2"); !ok || v != 0.98 {
		t.Errorf("Get(u1, u2) = (%f, %v), want (0.98, true)", v, ok)
	}

	wantTime := time.Date(2026, 1, 15, 12, 0, 0, 123456000, time.UTC)
	if !m.TrainedAt.Equal(wantTime) {
		t.Errorf("TrainedAt = %v, want %v", m.TrainedAt, wantTime)
	}
}

func TestDecodeModel_Errors(t *testing.T) {
	valid := map[string]string{
		"version":          `"1.0.0"`,
		"user_embeddings":  `{}`,
		"item_embeddings":  `{}`,
		"similarity_cache": `{}`,
		"timestamp":        `"2026-01-15T12:00:00Z"`,
	}
	build := func(skip string, override map[string]string) string {
		var parts []string
		for _, k := range []string{"version", "user_embeddings", "item_embeddings", "similarity_cache", "timestamp"} {
			if k == skip {
				continue
			}
			v := valid[k]
			if o, ok := override[k]; ok {
				v = o
			}
			parts = append(parts, `"`+k+`":`+v)
		}
		return "{" + strings.Join(parts, ",") + "}"
	}

	tests := []struct {
		name   string
		record string
	}{
		{"malformed json", `{"version": `},
		{"missing version", build("version", nil)},
		{"missing user embeddings", build("user_embeddings", nil)},
		{"missing item embeddings", build("item_embeddings", nil)},
		{"missing similarity cache", build("similarity_cache", nil)},
		{"missing timestamp", build("timestamp", nil)},
		{"bad timestamp", build("", map[string]string{"timestamp": `"yesterday"`})},
		{"wrong embedding type", build("", map[string]string{"user_embeddings": `{"u1": "x"}`})},
		{"unparseable similarity key", build("", map[string]string{"similarity_cache": `{"song_a_b": 0.5}`})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeModel(strings.NewReader(tt.record), DefaultConfig())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidModel) {
				t.Errorf("error = %v, want ErrInvalidModel", err)
			}
		})
	}

	t.Run("complete record decodes", func(t *testing.T) {
		if _, err := DecodeModel(strings.NewReader(build("", nil)), DefaultConfig()); err != nil {
			t.Errorf("DecodeModel() error = %v", err)
		}
	})
}

func TestDecodeModel_EmptyVersionUsesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = "2.0.0"
	record := `{"version":"","user_embeddings":{},"item_embeddings":{},"similarity_cache":{},"timestamp":"2026-01-15T12:00:00Z"}`

	m, err := DecodeModel(strings.NewReader(record), cfg)
	if err != nil {
		t.Fatalf("DecodeModel() error = %v", err)
	}
	if m.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", m.Version)
	}
}
