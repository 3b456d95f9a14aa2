// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Soumyadip-03/NFTGenie/internal/logging"
	"github.com/Soumyadip-03/NFTGenie/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Error codes.
const (
	codeBadRequest       = "BAD_REQUEST"
	codeUserNotFound     = "USER_NOT_FOUND"
	codeItemNotFound     = "NFT_NOT_FOUND"
	codeDataUnavailable  = "DATA_UNAVAILABLE"
	codeRecommendFailed  = "RECOMMENDATION_FAILED"
	codeInternal         = "INTERNAL_ERROR"
	codeTrainingDisabled = "TRAINING_UNAVAILABLE"
)

// ErrorResponse is the envelope of every error.
type ErrorResponse struct {
	Status string   `json:"status"`
	Error  APIError `json:"error"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	respondRaw(w, status, data)
}

func respondRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the error envelope. err is logged, never sent.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("code", code).Str("path", r.URL.Path).Msg("API error")
	}
	respondJSON(w, status, ErrorResponse{
		Status: "error",
		Error:  APIError{Code: code, Message: message},
	})
}

func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Status: "error",
		Error: APIError{
			Code:    verr.Code(),
			Message: verr.Error(),
			Details: verr.Fields,
		},
	})
}

// errEmptyBody is returned by decodeJSON for a request without a body.
var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes the body into dst, which should already hold defaults.
// Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errEmptyBody
	default:
		return fmt.Errorf("invalid JSON body: %w", err)
	}
}

// decodeAndValidate decodes and validates a request body and writes the
// error response itself. It returns false when the handler should stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		if !(allowEmpty && errors.Is(err, errEmptyBody)) {
			respondError(w, r, http.StatusBadRequest, codeBadRequest, err.Error(), nil)
			return false
		}
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		respondValidationError(w, verr)
		return false
	}
	return true
}
