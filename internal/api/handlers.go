// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Soumyadip-03/NFTGenie/internal/database"
	"github.com/Soumyadip-03/NFTGenie/internal/logging"
	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
	"github.com/Soumyadip-03/NFTGenie/internal/validation"
)

// Health statuses.
const (
	statusHealthy     = "healthy"
	statusUnavailable = "unavailable"
)

// trendingSampleSize is how many trending items /stats scores for diversity.
const trendingSampleSize = 10

// Health handles GET / and GET /health. It always answers 200; dependency
// state is reported in the body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := HealthResponse{
		Status:         statusHealthy,
		ModelVersion:   h.engine.Stats().Version,
		CacheStatus:    statusHealthy,
		DatabaseStatus: statusHealthy,
		IsTraining:     h.engine.GetStatus().IsTraining,
	}
	if err := h.memo.Ping(ctx); err != nil {
		resp.CacheStatus = statusUnavailable
	}
	if err := h.store.Ping(ctx); err != nil {
		resp.DatabaseStatus = statusUnavailable
	}
	if t, ok := h.lastTrained(ctx); ok {
		resp.LastTrained = &t
	}
	respondJSON(w, http.StatusOK, resp)
}

// RecordInteraction handles POST /interaction.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := InteractionRequest{Value: defaultInteractionValue}
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	userID, err := h.store.ResolveUserID(ctx, req.UserID)
	if errors.Is(err, database.ErrUnknownUser) {
		respondError(w, r, http.StatusNotFound, codeUserNotFound, "User not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, codeDataUnavailable, "Failed to look up user", err)
		return
	}

	in := recommend.Interaction{
		UserID:    userID,
		ItemID:    req.NFTID,
		Type:      recommend.InteractionType(req.InteractionType),
		Timestamp: h.now(),
		Value:     req.Value,
	}
	switch err := h.store.RecordInteraction(ctx, in); {
	case errors.Is(err, database.ErrUnknownItem):
		respondError(w, r, http.StatusNotFound, codeItemNotFound, "NFT not found", nil)
		return
	case errors.Is(err, database.ErrUnknownUser):
		respondError(w, r, http.StatusNotFound, codeUserNotFound, "User not found", nil)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, codeInternal, "Failed to record interaction", err)
		return
	}

	if h.queue != nil && !h.queue.Enqueue(in) {
		metrics.RecordOnlineUpdate("dropped")
		logging.Ctx(ctx).Warn().Str("user", userID).Msg("online update queue full, update dropped")
	}
	h.invalidateUser(ctx, userID)

	respondJSON(w, http.StatusOK, StatusResponse{Status: "success", Message: "Interaction recorded"})
}

// Train handles POST /train. Without force_retrain it does nothing when the
// last training is younger than the retrain throttle.
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	var req TrainRequest
	if !decodeAndValidate(w, r, &req, true) {
		return
	}
	if h.trainer == nil {
		respondError(w, r, http.StatusServiceUnavailable, codeTrainingDisabled, "Training is not available", nil)
		return
	}

	if !req.ForceRetrain {
		if last, ok := h.lastTrained(r.Context()); ok && h.now().Sub(last) < h.settings.RetrainThrottle {
			metrics.RecordTrainingSkipped()
			respondJSON(w, http.StatusOK, StatusResponse{
				Status:      "skipped",
				Message:     "Model was trained recently",
				LastTrained: &last,
			})
			return
		}
	}

	msg := "Model training initiated in background"
	if !h.trainer.TriggerTraining() {
		msg = "Model training already in progress"
	}
	respondJSON(w, http.StatusAccepted, StatusResponse{Status: "training", Message: msg})
}

// Explain handles GET /explain/{userID}/{nftID}.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	userRef := chi.URLParam(r, "userID")
	itemID := chi.URLParam(r, "nftID")

	userID, _ := h.resolveUser(r.Context(), userRef)
	respondJSON(w, http.StatusOK, ExplainResponse{
		UserID:      userRef,
		NFTID:       itemID,
		Explanation: h.engine.Explain(userID, itemID),
	})
}

// Similar handles GET /similar/{nftID}.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "nftID")
	if _, known := h.engine.Snapshot().ItemEmbedding(itemID); !known {
		respondError(w, r, http.StatusNotFound, codeItemNotFound, "NFT is not part of the trained model", nil)
		return
	}

	neighbors := h.engine.SimilarItems(itemID, limit)
	out := make([]SimilarResponse, len(neighbors))
	for i, n := range neighbors {
		out[i] = SimilarResponse{NFTID: n.ID, Similarity: n.Score}
	}
	respondJSON(w, http.StatusOK, out)
}

// Stats handles GET /stats. Unavailable parts are reported as zero values.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.Ctx(ctx)

	model := h.engine.Stats()
	resp := StatsResponse{
		ModelVersion: model.Version,
		Embeddings: EmbeddingCounts{
			Users: model.UserEmbeddings,
			NFTs:  model.ItemEmbeddings,
		},
		SimilarityEntries: model.SimilarityEntries,
		OnlineUpdates:     model.OnlineUpdates,
		Generation:        model.Generation,
		Strategies:        model.Strategies,
		CacheBackend:      h.memo.Name(),
		Training:          h.engine.GetStatus(),
	}

	if stats, err := h.store.InteractionStats(ctx); err != nil {
		log.Warn().Err(err).Msg("interaction stats unavailable")
	} else {
		resp.InteractionStats = stats
	}

	if n, err := h.memo.Size(ctx); err != nil {
		metrics.RecordMemoError(h.memo.Name(), "size")
	} else {
		resp.CacheEntries = n
	}

	if items, err := h.store.Items(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog unavailable for diversity score")
	} else if recs, err := h.engine.Recommend(ctx, "", items, trendingSampleSize, fallbackStrategy); err == nil {
		sample := make([]recommend.Item, len(recs))
		for i := range recs {
			sample[i] = recs[i].Item
		}
		resp.TrendingDiversity = h.engine.DiversityScore(sample)
	}

	if h.perf != nil {
		resp.Endpoints = h.perf.Stats()
	}
	respondJSON(w, http.StatusOK, resp)
}

// parseLimit reads ?limit, defaulting to 10 and bounded to 1..100.
func (h *Handler) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	q := limitQuery{Limit: defaultLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, codeBadRequest, "limit must be an integer", nil)
			return 0, false
		}
		q.Limit = n
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, verr)
		return 0, false
	}
	return q.Limit, true
}
