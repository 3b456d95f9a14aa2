// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

/*
Package middleware provides the HTTP middleware used by the API router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request counters and latency histograms keyed by route pattern
  - PerformanceMonitor: rolling per-route latency percentiles and slow request logging

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perf.Middleware)

Metrics and the performance monitor label requests by chi route pattern
("/explain/{userID}/{nftID}") rather than raw path, which keeps label
cardinality bounded.
*/
package middleware
