// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// RecommendEngine is the training surface of *recommend.Engine.
type RecommendEngine interface {
	Train(ctx context.Context) error
	Restore(ctx context.Context) error
	Stats() recommend.ModelStats
}

var _ RecommendEngine = (*recommend.Engine)(nil)

// RecommendServiceConfig controls the training schedule.
type RecommendServiceConfig struct {
	// TrainOnStartup trains even when a stored model was restored.
	TrainOnStartup bool

	// TrainInterval is the retraining period. Zero disables scheduled training.
	TrainInterval time.Duration
}

// RecommendService owns the model lifecycle. It restores or trains at
// startup and retrains on schedule and on request. The engine persists each
// trained model; the service then records the training time in the memo.
type RecommendService struct {
	engine  RecommendEngine
	memo    cache.Memo
	config  RecommendServiceConfig
	logger  zerolog.Logger
	now     func() time.Time
	trigger chan struct{}
	running atomic.Bool
	started atomic.Bool
}

// NewRecommendService creates the service. memo may be nil, in which case
// no training marker is written.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecommendService(engine RecommendEngine, memo cache.Memo, cfg RecommendServiceConfig, logger zerolog.Logger) *RecommendService {
	return &RecommendService{
		engine:  engine,
		memo:    memo,
		config:  cfg,
		logger:  logger.With().Str("service", "recommend").Logger(),
		now:     time.Now,
		trigger: make(chan struct{}, 1),
	}
}

// TriggerTraining requests a background training run. It returns false when
// a run is in progress or already requested.
func (s *RecommendService) TriggerTraining() bool {
	if s.running.Load() {
		return false
	}
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Training reports whether a run is in progress.
func (s *RecommendService) Training() bool {
	return s.running.Load()
}

// Serve implements suture.Service. The startup step runs once per process;
// restarts by the supervisor go straight to the schedule loop.
func (s *RecommendService) Serve(ctx context.Context) error {
	if s.started.CompareAndSwap(false, true) {
		s.startup(ctx)
	}

	var tick <-chan time.Time
	if s.config.TrainInterval > 0 {
		ticker := time.NewTicker(s.config.TrainInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("recommendation service shutting down")
			return ctx.Err()
		case <-tick:
			s.logger.Debug().Msg("scheduled training triggered")
			s.train(ctx)
		case <-s.trigger:
			s.logger.Info().Msg("requested training triggered")
			s.train(ctx)
		}
	}
}

func (s *RecommendService) startup(ctx context.Context) {
	err := s.engine.Restore(ctx)
	switch {
	case err == nil:
		st := s.engine.Stats()
		metrics.SetModelStats(st.UserEmbeddings, st.ItemEmbeddings, st.SimilarityEntries, st.Generation)
		s.logger.Info().
			Str("version", st.Version).
			Int("users", st.UserEmbeddings).
			Int("nfts", st.ItemEmbeddings).
			Msg("restored stored model")
		if !s.config.TrainOnStartup {
			return
		}
	case errors.Is(err, recommend.ErrNoModelStore):
		s.logger.Info().Msg("no model store configured, training")
	default:
		s.logger.Info().Err(err).Msg("no usable stored model, training")
	}
	s.train(ctx)
}

// train runs one training cycle. Failures are logged and leave no training
// marker.
func (s *RecommendService) train(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer s.running.Store(false)

	start := time.Now()
	err := s.engine.Train(ctx)
	metrics.RecordTraining(time.Since(start), err)

	switch {
	case err == nil:
	case errors.Is(err, recommend.ErrInsufficientData):
		s.logger.Warn().Err(err).Msg("not enough interactions to train, keeping current model")
		return
	case errors.Is(err, recommend.ErrTrainingInProgress):
		s.logger.Info().Msg("training already in progress")
		return
	case ctx.Err() != nil:
		return
	default:
		s.logger.Error().Err(err).Msg("model training failed")
		return
	}

	st := s.engine.Stats()
	metrics.SetModelStats(st.UserEmbeddings, st.ItemEmbeddings, st.SimilarityEntries, st.Generation)
	s.logger.Info().
		Dur("duration", time.Since(start)).
		Int("users", st.UserEmbeddings).
		Int("nfts", st.ItemEmbeddings).
		Int("similarities", st.SimilarityEntries).
		Msg("model training complete")

	if s.memo != nil {
		if err := cache.MarkTrained(ctx, s.memo, s.now()); err != nil {
			metrics.RecordMemoError(s.memo.Name(), "set")
			s.logger.Warn().Err(err).Msg("failed to record training time")
		}
	}
}

// String names the service in supervisor events.
func (s *RecommendService) String() string {
	return "recommend-service"
}
