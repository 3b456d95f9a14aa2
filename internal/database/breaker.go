// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// BreakerName labels the training data breaker in metrics.
const BreakerName = "training-data"

// BreakerConfig tunes NewBreakerProvider.
type BreakerConfig struct {
	// ConsecutiveFailures opens the circuit. Defaults to 3.
	ConsecutiveFailures uint32

	// Timeout is how long the circuit stays open. Defaults to one minute.
	Timeout time.Duration
}

// BreakerProvider guards a DataProvider with a circuit breaker.
type BreakerProvider struct {
	next   recommend.DataProvider
	cb     *gobreaker.CircuitBreaker[any]
	logger zerolog.Logger
}

// NewBreakerProvider wraps next.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerProvider(next recommend.DataProvider, cfg BreakerConfig, logger zerolog.Logger) *BreakerProvider {
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}

	bp := &BreakerProvider{
		next:   next,
		logger: logger.With().Str("component", "breaker").Str("breaker", BreakerName).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(stateToFloat(gobreaker.StateClosed))

	bp.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		// A canceled caller says nothing about database health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			bp.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return bp
}

// State returns the breaker state.
func (bp *BreakerProvider) State() gobreaker.State {
	return bp.cb.State()
}

func (bp *BreakerProvider) execute(fn func() (any, error)) (any, error) {
	res, err := bp.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "failure").Inc()
	}
	return res, err
}

func cast[T any](res any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return v, nil
}

// Users calls the wrapped provider unless the circuit is open.
func (bp *BreakerProvider) Users(ctx context.Context) ([]recommend.User, error) {
	return cast[[]recommend.User](bp.execute(func() (any, error) {
		return bp.next.Users(ctx)
	}))
}

// Items calls the wrapped provider unless the circuit is open.
func (bp *BreakerProvider) Items(ctx context.Context) ([]recommend.Item, error) {
	return cast[[]recommend.Item](bp.execute(func() (any, error) {
		return bp.next.Items(ctx)
	}))
}

// Interactions calls the wrapped provider unless the circuit is open.
func (bp *BreakerProvider) Interactions(ctx context.Context) ([]recommend.Interaction, error) {
	return cast[[]recommend.Interaction](bp.execute(func() (any, error) {
		return bp.next.Interactions(ctx)
	}))
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

var _ recommend.DataProvider = (*BreakerProvider)(nil)
