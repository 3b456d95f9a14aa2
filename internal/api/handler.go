// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
	"github.com/Soumyadip-03/NFTGenie/internal/database"
	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/middleware"
)

// Settings tunes handler behavior.
type Settings struct {
	// MemoTTL is how long /recommend responses are memoized.
	MemoTTL time.Duration

	// RetrainThrottle is the minimum age of the last training before an
	// unforced POST /train starts another run.
	RetrainThrottle time.Duration

	// DiversityLambda enables MMR re-ranking of diversified requests when below 1.
	DiversityLambda float64
}

// DefaultSettings returns a 300s memo, a 6h retrain throttle and no MMR.
func DefaultSettings() Settings {
	return Settings{
		MemoTTL:         cache.DefaultRecommendationTTL,
		RetrainThrottle: 6 * time.Hour,
		DiversityLambda: 1,
	}
}

// Handler holds the dependencies of every endpoint.
type Handler struct {
	engine   Engine
	store    Store
	memo     cache.Memo
	queue    InteractionQueue
	trainer  TrainTrigger
	perf     *middleware.PerformanceMonitor
	settings Settings
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures optional Handler dependencies.
type Option func(*Handler)

// WithInteractionQueue sets the online update queue.
func WithInteractionQueue(q InteractionQueue) Option {
	return func(h *Handler) { h.queue = q }
}

// WithTrainTrigger sets the background trainer.
func WithTrainTrigger(t TrainTrigger) Option {
	return func(h *Handler) { h.trainer = t }
}

// WithPerformanceMonitor exposes endpoint latency stats on /stats.
func WithPerformanceMonitor(pm *middleware.PerformanceMonitor) Option {
	return func(h *Handler) { h.perf = pm }
}

// WithSettings overrides DefaultSettings.
func WithSettings(s Settings) Option {
	return func(h *Handler) { h.settings = s }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates a Handler. engine, store and memo are required.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(engine Engine, store Store, memo cache.Memo, logger zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{
		engine:   engine,
		store:    store,
		memo:     memo,
		settings: DefaultSettings(),
		logger:   logger.With().Str("component", "api").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// resolveUser maps a user reference onto a user id. Unknown users and lookup
// failures fall back to the reference itself; known reports which case applied.
func (h *Handler) resolveUser(ctx context.Context, ref string) (id string, known bool) {
	id, err := h.store.ResolveUserID(ctx, ref)
	switch {
	case err == nil:
		return id, true
	case errors.Is(err, database.ErrUnknownUser):
		return ref, false
	default:
		h.logger.Warn().Err(err).Str("user", ref).Msg("user lookup failed, treating as unknown")
		return ref, false
	}
}

func (h *Handler) memoGet(ctx context.Context, key string) ([]byte, bool) {
	data, err := h.memo.Get(ctx, key)
	switch {
	case err == nil:
		metrics.RecordMemoLookup(h.memo.Name(), true)
		return data, true
	case errors.Is(err, cache.ErrMiss):
		metrics.RecordMemoLookup(h.memo.Name(), false)
	default:
		metrics.RecordMemoError(h.memo.Name(), "get")
		h.logger.Warn().Err(err).Str("key", key).Msg("memo read failed")
	}
	return nil, false
}

func (h *Handler) memoSet(ctx context.Context, key string, data []byte) {
	if err := h.memo.Set(ctx, key, data, h.settings.MemoTTL); err != nil {
		metrics.RecordMemoError(h.memo.Name(), "set")
		h.logger.Warn().Err(err).Str("key", key).Msg("memo write failed")
	}
}

func (h *Handler) invalidateUser(ctx context.Context, userID string) {
	n, err := h.memo.DeletePattern(ctx, cache.UserPattern(userID))
	if err != nil {
		metrics.RecordMemoError(h.memo.Name(), "delete")
		h.logger.Warn().Err(err).Str("user", userID).Msg("memo invalidation failed")
		return
	}
	metrics.RecordMemoInvalidation(h.memo.Name(), n)
}

// lastTrained returns the memo marker, or the engine's own status when no
// marker exists.
func (h *Handler) lastTrained(ctx context.Context) (time.Time, bool) {
	t, ok, err := cache.LastTrained(ctx, h.memo)
	if err != nil {
		h.logger.Warn().Err(err).Msg("read last training marker failed")
	}
	if ok {
		return t, true
	}
	if st := h.engine.GetStatus(); !st.LastTrainedAt.IsZero() {
		return st.LastTrainedAt, true
	}
	return time.Time{}, false
}
