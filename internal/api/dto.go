// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"time"

	"github.com/Soumyadip-03/NFTGenie/internal/database"
	"github.com/Soumyadip-03/NFTGenie/internal/middleware"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// Request defaults.
const (
	defaultLimit            = 10
	defaultStrategy         = "hybrid"
	defaultInteractionValue = 1.0
)

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	UserID       string `json:"user_id" validate:"notblank,max=128"`
	Limit        int    `json:"limit" validate:"min=1,max=100"`
	Strategy     string `json:"strategy" validate:"oneof=hybrid collaborative content trending"`
	ExcludeOwned bool   `json:"exclude_owned"`
	Diversify    bool   `json:"diversify"`
}

func newRecommendRequest() RecommendRequest {
	return RecommendRequest{
		Limit:        defaultLimit,
		Strategy:     defaultStrategy,
		ExcludeOwned: true,
		Diversify:    true,
	}
}

// InteractionRequest is the body of POST /interaction.
type InteractionRequest struct {
	UserID          string  `json:"user_id" validate:"notblank,max=128"`
	NFTID           string  `json:"nft_id" validate:"notblank,max=128"`
	InteractionType string  `json:"interaction_type" validate:"oneof=view like purchase mint"`
	Value           float64 `json:"value" validate:"gte=0,lte=10"`
}

// TrainRequest is the optional body of POST /train.
type TrainRequest struct {
	ForceRetrain bool `json:"force_retrain"`
}

// limitQuery validates ?limit on GET endpoints.
type limitQuery struct {
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// RecommendationResponse is one recommended NFT.
type RecommendationResponse struct {
	NFTID    string   `json:"nft_id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"image_url"`
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
	Price    float64  `json:"price"`
	Creator  string   `json:"creator"`
	Tags     []string `json:"tags"`
}

func toRecommendationResponses(recs []recommend.ScoredItem) []RecommendationResponse {
	out := make([]RecommendationResponse, len(recs))
	for i, r := range recs {
		tags := r.Item.Tags
		if tags == nil {
			tags = []string{}
		}
		out[i] = RecommendationResponse{
			NFTID:    r.Item.ID,
			Name:     r.Item.Name,
			ImageURL: r.Item.ImageURL,
			Score:    r.Score,
			Reason:   r.Reason,
			Price:    r.Item.Price,
			Creator:  r.Item.CreatorID,
			Tags:     tags,
		}
	}
	return out
}

// TrendingResponse is one trending NFT.
type TrendingResponse struct {
	NFTID      string  `json:"nft_id"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"image_url"`
	TrendScore float64 `json:"trend_score"`
	Views      int64   `json:"views"`
	Likes      int64   `json:"likes"`
	Price      float64 `json:"price"`
}

// SimilarResponse is one neighbor of an NFT.
type SimilarResponse struct {
	NFTID      string  `json:"nft_id"`
	Similarity float64 `json:"similarity"`
}

// StatusResponse is returned by /interaction and /train.
type StatusResponse struct {
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	LastTrained *time.Time `json:"last_trained,omitempty"`
}

// ExplainResponse is returned by /explain.
type ExplainResponse struct {
	UserID      string                `json:"user_id"`
	NFTID       string                `json:"nft_id"`
	Explanation recommend.Explanation `json:"explanation"`
}

// HealthResponse is returned by / and /health.
type HealthResponse struct {
	Status         string     `json:"status"`
	ModelVersion   string     `json:"model_version"`
	LastTrained    *time.Time `json:"last_trained"`
	CacheStatus    string     `json:"cache_status"`
	DatabaseStatus string     `json:"database_status"`
	IsTraining     bool       `json:"is_training"`
}

// EmbeddingCounts reports embedding table sizes.
type EmbeddingCounts struct {
	Users int `json:"users"`
	NFTs  int `json:"nfts"`
}

// StatsResponse is returned by /stats.
type StatsResponse struct {
	ModelVersion string `json:"model_version"`
	database.InteractionStats
	Embeddings        EmbeddingCounts            `json:"embeddings"`
	SimilarityEntries int                        `json:"similarity_entries"`
	OnlineUpdates     int64                      `json:"online_updates"`
	Generation        int64                      `json:"generation"`
	Strategies        []string                   `json:"strategies"`
	CacheEntries      int64                      `json:"cache_entries"`
	CacheBackend      string                     `json:"cache_backend"`
	TrendingDiversity float64                    `json:"trending_diversity"`
	Training          recommend.TrainingStatus   `json:"training"`
	Endpoints         []middleware.EndpointStats `json:"endpoints,omitempty"`
}
