// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Soumyadip-03/NFTGenie/internal/logging"
)

func sample(route string, ms int, status int) RequestSample {
	return RequestSample{
		Route:      route,
		Method:     http.MethodGet,
		Duration:   time.Duration(ms) * time.Millisecond,
		StatusCode: status,
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	pm := NewPerformanceMonitor(100, 0)
	for i := 1; i <= 10; i++ {
		pm.Record(sample("/recommend", i*10, http.StatusOK))
	}
	pm.Record(sample("/health", 1, http.StatusOK))
	pm.Record(sample("/health", 3, http.StatusServiceUnavailable))

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}

	rec := stats[0]
	if rec.Endpoint != "GET /recommend" || rec.RequestCount != 10 {
		t.Fatalf("stats[0] = %+v", rec)
	}
	if rec.AvgMS != 55 {
		t.Errorf("AvgMS = %v, want 55", rec.AvgMS)
	}
	if rec.P50MS != 50 {
		t.Errorf("P50MS = %v, want 50", rec.P50MS)
	}
	if rec.P95MS != 90 {
		t.Errorf("P95MS = %v, want 90", rec.P95MS)
	}
	if rec.MaxMS != 100 {
		t.Errorf("MaxMS = %v, want 100", rec.MaxMS)
	}

	if stats[1].ErrorCount != 1 {
		t.Errorf("health ErrorCount = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_Window(t *testing.T) {
	pm := NewPerformanceMonitor(3, 0)
	for i := 0; i < 5; i++ {
		pm.Record(sample("/r", i, http.StatusOK))
	}
	if pm.Len() != 3 {
		t.Fatalf("Len = %d, want 3", pm.Len())
	}
	// Samples 0 and 1 were overwritten.
	if got := pm.Stats()[0].MaxMS; got != 4 {
		t.Errorf("MaxMS = %v, want 4", got)
	}
}

func TestPerformanceMonitor_Defaults(t *testing.T) {
	pm := NewPerformanceMonitor(0, 0)
	if len(pm.samples) != 1000 {
		t.Errorf("window = %d, want 1000", len(pm.samples))
	}
	if pm.slow != DefaultSlowThreshold {
		t.Errorf("slow = %v", pm.slow)
	}
	if stats := pm.Stats(); len(stats) != 0 {
		t.Errorf("empty monitor stats = %+v", stats)
	}
}

func TestPerformanceMonitor_MiddlewareLogsSlow(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	pm := NewPerformanceMonitor(10, 50*time.Millisecond)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	pm.now = func() time.Time {
		calls++
		if calls%2 == 0 {
			return base.Add(200 * time.Millisecond)
		}
		return base
	}

	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/explain/{userID}/{nftID}", func(http.ResponseWriter, *http.Request) {})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/explain/u1/n1", nil))

	stats := pm.Stats()
	if len(stats) != 1 || stats[0].Endpoint != "GET /explain/{userID}/{nftID}" {
		t.Fatalf("stats = %+v", stats)
	}
	if stats[0].MaxMS != 200 {
		t.Errorf("MaxMS = %v, want 200", stats[0].MaxMS)
	}
	if !strings.Contains(buf.String(), "Slow request") {
		t.Errorf("expected slow request log, got %q", buf.String())
	}
}
