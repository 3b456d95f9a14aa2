// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// DefaultQueueSize is used when NewInteractionService gets a non-positive size.
const DefaultQueueSize = 1024

// OnlineUpdater applies one interaction to the live model.
type OnlineUpdater interface {
	UpdateRealTime(in recommend.Interaction) bool
}

// InteractionService applies queued interactions to the engine one at a time.
// The queue survives restarts of Serve.
type InteractionService struct {
	updater OnlineUpdater
	queue   chan recommend.Interaction
	logger  zerolog.Logger
}

// NewInteractionService creates the worker and its queue.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewInteractionService(updater OnlineUpdater, size int, logger zerolog.Logger) *InteractionService {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &InteractionService{
		updater: updater,
		queue:   make(chan recommend.Interaction, size),
		logger:  logger.With().Str("service", "interaction-worker").Logger(),
	}
}

// Enqueue hands in to the worker without blocking. It returns false when
// the queue is full.
//
//nolint:gocritic // hugeParam: interactions travel by value
func (s *InteractionService) Enqueue(in recommend.Interaction) bool {
	select {
	case s.queue <- in:
		metrics.OnlineQueueDepth.Set(float64(len(s.queue)))
		return true
	default:
		return false
	}
}

// Len returns the number of queued interactions.
func (s *InteractionService) Len() int {
	return len(s.queue)
}

// Serve implements suture.Service.
func (s *InteractionService) Serve(ctx context.Context) error {
	s.logger.Debug().Int("capacity", cap(s.queue)).Msg("interaction worker started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-s.queue:
			metrics.OnlineQueueDepth.Set(float64(len(s.queue)))
			s.apply(in)
		}
	}
}

//nolint:gocritic // hugeParam: interactions travel by value
func (s *InteractionService) apply(in recommend.Interaction) {
	if s.updater.UpdateRealTime(in) {
		metrics.RecordOnlineUpdate("applied")
		return
	}
	metrics.RecordOnlineUpdate("unknown_user")
	s.logger.Debug().Str("user", in.UserID).Msg("no embedding for user, online update skipped")
}

// String names the service in supervisor events.
func (s *InteractionService) String() string {
	return "interaction-worker"
}
