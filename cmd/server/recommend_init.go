// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
	"github.com/Soumyadip-03/NFTGenie/internal/config"
	"github.com/Soumyadip-03/NFTGenie/internal/database"
	"github.com/Soumyadip-03/NFTGenie/internal/logging"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend/algorithms"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend/storage"
)

// closableMemo is a memo the process owns.
type closableMemo interface {
	cache.Memo
	io.Closer
}

// RecommendComponents holds the engine and the model store it persists to.
type RecommendComponents struct {
	Engine     *recommend.Engine
	ModelStore storage.Store
}

// Close releases the model store.
func (rc *RecommendComponents) Close() {
	if err := rc.ModelStore.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing model store")
	}
}

// initMemo connects to Redis when enabled. An unreachable Redis falls back
// to the in-process memo so the API keeps serving.
func initMemo(ctx context.Context, cfg *config.Config) closableMemo {
	if cfg.Redis.Enabled {
		redisMemo, err := cache.NewRedisMemo(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			logging.Info().Str("addr", cfg.Redis.Addr()).Msg("Connected to Redis")
			return redisMemo
		}
		logging.Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("Redis unavailable, using in-memory memo")
	} else {
		logging.Info().Msg("Redis disabled, using in-memory memo")
	}
	return cache.NewLocalMemo(time.Minute)
}

// initRecommend builds the engine, registers the default strategies and
// connects the data provider and model store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initRecommend(cfg *config.Config, store *database.Store, logger zerolog.Logger) (*RecommendComponents, error) {
	engineCfg := buildEngineConfig(cfg)

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	for _, s := range algorithms.Defaults(engineCfg) {
		engine.RegisterStrategy(s)
	}

	modelStore, err := storage.Open(storage.Config{
		Backend: cfg.Recommend.ModelStore,
		Path:    cfg.Recommend.ModelPath,
	})
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}

	engine.SetDataProvider(database.NewBreakerProvider(store, database.BreakerConfig{}, logger))
	engine.SetModelStore(modelStore)

	logger.Info().
		Strs("strategies", engine.Strategies()).
		Str("similarity_mode", engineCfg.Similarity.Mode).
		Str("model_store", cfg.Recommend.ModelStore).
		Str("model_path", cfg.Recommend.ModelPath).
		Msg("recommendation engine initialized")

	return &RecommendComponents{Engine: engine, ModelStore: modelStore}, nil
}

// buildEngineConfig maps service configuration onto engine defaults.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	rc := cfg.Recommend

	if rc.Version != "" {
		ec.Version = rc.Version
	}
	if rc.Seed != 0 {
		ec.Seed = rc.Seed
	}
	if len(rc.Categories) > 0 {
		ec.Categories = append([]string(nil), rc.Categories...)
	}
	if len(rc.InterestTags) > 0 {
		ec.InterestTags = append([]string(nil), rc.InterestTags...)
	}
	if rc.SimilarityMode != "" {
		ec.Similarity.Mode = rc.SimilarityMode
	}
	if rc.SimilarityLRUSize > 0 {
		ec.Similarity.LRUSize = rc.SimilarityLRUSize
	}
	if rc.DefaultLimit > 0 {
		ec.Limits.DefaultK = rc.DefaultLimit
	}
	if rc.MaxLimit > 0 {
		ec.Limits.MaxK = rc.MaxLimit
	}
	ec.Training.MinInteractions = rc.MinInteractions
	return ec
}
