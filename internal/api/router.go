// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Soumyadip-03/NFTGenie/internal/middleware"
)

// NewRouter wires h into a chi router. A nil mw means default middleware
// settings; timeout <= 0 disables the per-request deadline.
func NewRouter(h *Handler, mw *ChiMiddleware, timeout time.Duration) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.CORS())
	r.Use(mw.RateLimit())
	r.Use(middleware.PrometheusMetrics)
	if h.perf != nil {
		r.Use(h.perf.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "NOT_FOUND", "Endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/", h.Health)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if timeout > 0 {
			r.Use(chimw.Timeout(timeout))
		}
		r.Post("/recommend", h.Recommend)
		r.Post("/interaction", h.RecordInteraction)
		r.Post("/train", h.Train)
		r.Get("/explain/{userID}/{nftID}", h.Explain)
		r.Get("/trending", h.Trending)
		r.Get("/similar/{nftID}", h.Similar)
		r.Get("/stats", h.Stats)
	})

	return r
}
