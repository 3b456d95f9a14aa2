// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
	"github.com/Soumyadip-03/NFTGenie/internal/logging"
	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend/reranking"
)

// fallbackStrategy serves requests whose strategy failed.
const fallbackStrategy = "trending"

// mmrCandidateFactor widens the candidate list handed to MMR.
const mmrCandidateFactor = 3

// Recommend handles POST /recommend.
//
// Non-diversified responses are served from the memo when present. Owned
// items are dropped before ranking when exclude_owned is set. A failing
// strategy falls back to trending.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	req := newRecommendRequest()
	if !decodeAndValidate(w, r, &req, false) {
		return
	}

	userID, known := h.resolveUser(ctx, req.UserID)
	key := cache.RecommendationKey(userID, req.Strategy, req.Limit)

	if !req.Diversify {
		if data, ok := h.memoGet(ctx, key); ok {
			respondRaw(w, http.StatusOK, data)
			return
		}
	}

	items, err := h.store.Items(ctx)
	if err != nil {
		metrics.RecordRecommendation(req.Strategy, 0, time.Since(start), err)
		respondError(w, r, http.StatusServiceUnavailable, codeDataUnavailable, "NFT catalog is unavailable", err)
		return
	}

	if req.ExcludeOwned && known {
		items = h.excludeOwned(r, userID, items)
	}

	mmr := req.Diversify && h.settings.DiversityLambda < 1
	fetch := req.Limit
	if mmr {
		fetch = req.Limit * mmrCandidateFactor
	}

	strategy := req.Strategy
	recs, err := h.engine.Recommend(ctx, userID, items, fetch, strategy)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("strategy", strategy).Msg("strategy failed, falling back to trending")
		metrics.RecordFallback(strategy)
		strategy = fallbackStrategy
		recs, err = h.engine.Recommend(ctx, userID, items, fetch, strategy)
		if err != nil {
			metrics.RecordRecommendation(strategy, 0, time.Since(start), err)
			respondError(w, r, http.StatusInternalServerError, codeRecommendFailed, "Failed to generate recommendations", err)
			return
		}
	}

	if mmr {
		recs = reranking.NewMMR(h.settings.DiversityLambda, reranking.EmbeddingCosine(h.engine.Snapshot())).Rerank(recs, req.Limit)
	} else if len(recs) > req.Limit {
		recs = recs[:req.Limit]
	}

	data, err := json.Marshal(toRecommendationResponses(recs))
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "Failed to encode recommendations", err)
		return
	}
	h.memoSet(ctx, key, data)
	metrics.RecordRecommendation(strategy, len(recs), time.Since(start), nil)
	respondRaw(w, http.StatusOK, data)
}

// excludeOwned drops items the user owns. A failed lookup leaves items as is.
func (h *Handler) excludeOwned(r *http.Request, userID string, items []recommend.Item) []recommend.Item {
	owned, err := h.store.OwnedItemIDs(r.Context(), userID)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("user", userID).Msg("owned items lookup failed, not filtering")
		return items
	}
	if len(owned) == 0 {
		return items
	}
	out := make([]recommend.Item, 0, len(items))
	for i := range items {
		if _, ok := owned[items[i].ID]; !ok {
			out = append(out, items[i])
		}
	}
	return out
}

// Trending handles GET /trending.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}

	items, err := h.store.Items(r.Context())
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, codeDataUnavailable, "NFT catalog is unavailable", err)
		return
	}

	recs, err := h.engine.Recommend(r.Context(), "", items, limit, fallbackStrategy)
	metrics.RecordRecommendation(fallbackStrategy, len(recs), time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeRecommendFailed, "Failed to compute trending NFTs", err)
		return
	}

	out := make([]TrendingResponse, len(recs))
	for i, rec := range recs {
		out[i] = TrendingResponse{
			NFTID:      rec.Item.ID,
			Name:       rec.Item.Name,
			ImageURL:   rec.Item.ImageURL,
			TrendScore: rec.Score,
			Views:      rec.Item.Views,
			Likes:      rec.Item.Likes,
			Price:      rec.Item.Price,
		}
	}
	respondJSON(w, http.StatusOK, out)
}
