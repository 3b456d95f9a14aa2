// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package validation validates request DTOs with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so building one per request would be wasteful. Field names in
// messages are the JSON names, so clients see "limit must be at most 100"
// rather than Go field names.
//
//	type RecommendRequest struct {
//	    UserID string `json:"user_id" validate:"notblank,max=128"`
//	    Limit  int    `json:"limit" validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusUnprocessableEntity, verr.Code(), verr.Error(), nil)
//	}
package validation
