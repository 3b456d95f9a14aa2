// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

type mockProvider struct {
	calls int
	err   error
	users []recommend.User
}

func (m *mockProvider) Users(context.Context) ([]recommend.User, error) {
	m.calls++
	return m.users, m.err
}

func (m *mockProvider) Items(context.Context) ([]recommend.Item, error) {
	m.calls++
	return []recommend.Item{{ID: "n1"}}, m.err
}

func (m *mockProvider) Interactions(context.Context) ([]recommend.Interaction, error) {
	m.calls++
	return nil, m.err
}

func TestBreakerProvider_PassThrough(t *testing.T) {
	next := &mockProvider{users: []recommend.User{{ID: "u1"}}}
	bp := NewBreakerProvider(next, BreakerConfig{}, zerolog.Nop())

	users, err := bp.Users(context.Background())
	if err != nil || len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("Users = %v, %v", users, err)
	}
	items, err := bp.Items(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("Items = %v, %v", items, err)
	}
	inter, err := bp.Interactions(context.Background())
	if err != nil || inter != nil {
		t.Fatalf("Interactions = %v, %v", inter, err)
	}
	if bp.State() != gobreaker.StateClosed {
		t.Errorf("State = %v", bp.State())
	}
}

func TestBreakerProvider_OpensAfterFailures(t *testing.T) {
	boom := errors.New("db down")
	next := &mockProvider{err: boom}
	bp := NewBreakerProvider(next, BreakerConfig{ConsecutiveFailures: 2, Timeout: time.Hour}, zerolog.Nop())

	rejected := metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "rejected")
	before := testutil.ToFloat64(rejected)

	for i := 0; i < 2; i++ {
		if _, err := bp.Users(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("call %d err = %v", i, err)
		}
	}
	if bp.State() != gobreaker.StateOpen {
		t.Fatalf("State = %v, want open", bp.State())
	}

	_, err := bp.Items(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
	if next.calls != 2 {
		t.Errorf("wrapped provider called %d times, want 2", next.calls)
	}
	if got := testutil.ToFloat64(rejected) - before; got != 1 {
		t.Errorf("rejected delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName)); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestBreakerProvider_CanceledIsNotFailure(t *testing.T) {
	next := &mockProvider{err: context.Canceled}
	bp := NewBreakerProvider(next, BreakerConfig{ConsecutiveFailures: 1}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := bp.Users(context.Background()); !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v", err)
		}
	}
	if bp.State() != gobreaker.StateClosed {
		t.Errorf("State = %v, want closed", bp.State())
	}
}

func TestStateToFloat(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
		{gobreaker.State(99), -1},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
