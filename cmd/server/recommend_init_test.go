// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package main

import (
	"context"
	"testing"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
	"github.com/Soumyadip-03/NFTGenie/internal/config"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

func TestBuildEngineConfig(t *testing.T) {
	cfg := &config.Config{Recommend: config.RecommendConfig{
		Version:         "2.0.0",
		Seed:            7,
		Categories:      []string{"art", "music"},
		InterestTags:    []string{"music"},
		SimilarityMode:  recommend.SimilarityLazy,
		DefaultLimit:    5,
		MaxLimit:        50,
		MinInteractions: 3,
	}}

	ec := buildEngineConfig(cfg)
	if err := ec.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if ec.Version != "2.0.0" || ec.Seed != 7 || ec.Similarity.Mode != recommend.SimilarityLazy {
		t.Errorf("config = %+v", ec)
	}
	if len(ec.Categories) != 2 || ec.InterestTags[0] != "music" {
		t.Errorf("categories = %v, interest tags = %v", ec.Categories, ec.InterestTags)
	}
	if ec.Limits.DefaultK != 5 || ec.Limits.MaxK != 50 || ec.Training.MinInteractions != 3 {
		t.Errorf("limits = %+v, training = %+v", ec.Limits, ec.Training)
	}

	// Zero values keep engine defaults.
	def := buildEngineConfig(&config.Config{})
	want := recommend.DefaultConfig()
	if def.Version != want.Version || def.Seed != want.Seed || def.Limits != want.Limits {
		t.Errorf("defaults = %+v", def)
	}
}

func TestInitMemo_RedisDisabled(t *testing.T) {
	cfg := &config.Config{}
	memo := initMemo(context.Background(), cfg)
	defer memo.Close()

	if _, ok := memo.(*cache.LocalMemo); !ok {
		t.Errorf("memo = %T, want *cache.LocalMemo", memo)
	}
}
