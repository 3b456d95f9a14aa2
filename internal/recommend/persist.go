// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
)

// Persisted record field names.
const (
	fieldVersion         = "version"
	fieldUserEmbeddings  = "user_embeddings"
	fieldItemEmbeddings  = "item_embeddings"
	fieldLegacyItems     = "nft_embeddings"
	fieldSimilarityCache = "similarity_cache"
	fieldTimestamp       = "timestamp"
)

// timestampLayouts are tried in order when loading. The zone-less layout
// matches naive ISO-8601 timestamps, which are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// modelRecord is the persisted form of a Model.
type modelRecord struct {
	Version         string               `json:"version"`
	UserEmbeddings  map[string][]float64 `json:"user_embeddings"`
	ItemEmbeddings  map[string][]float64 `json:"item_embeddings"`
	SimilarityCache map[string]float64   `json:"similarity_cache"`
	Timestamp       string               `json:"timestamp"`
}

// EncodeModel writes m as a JSON record stamped with savedAt.
func EncodeModel(w io.Writer, m *Model, savedAt time.Time) error {
	rec := modelRecord{
		Version:         m.Version,
		UserEmbeddings:  make(map[string][]float64, len(m.Users)),
		ItemEmbeddings:  make(map[string][]float64, len(m.Items)),
		SimilarityCache: make(map[string]float64, m.Similarity.Len()),
		Timestamp:       savedAt.Format(time.RFC3339Nano),
	}
	for id, e := range m.Users {
		rec.UserEmbeddings[id] = e
	}
	for id, e := range m.Items {
		rec.ItemEmbeddings[id] = e
	}
	for key, v := range m.Similarity.Entries() {
		rec.SimilarityCache[key.String()] = v
	}

	if err := json.NewEncoder(w).Encode(&rec); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// DecodeModel reads a record written by EncodeModel.
//
// Every top-level key must be present. "nft_embeddings" is accepted in place
// of "item_embeddings" and "nft_" in place of "item_" in similarity keys.
func DecodeModel(r io.Reader, cfg *Config) (*Model, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	itemsField := fieldItemEmbeddings
	if _, ok := raw[itemsField]; !ok {
		if _, legacy := raw[fieldLegacyItems]; legacy {
			itemsField = fieldLegacyItems
		}
	}
	for _, field := range []string{fieldVersion, fieldUserEmbeddings, itemsField, fieldSimilarityCache, fieldTimestamp} {
		if _, ok := raw[field]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrInvalidModel, field)
		}
	}

	var rec modelRecord
	if err := decodeField(raw, fieldVersion, &rec.Version); err != nil {
		return nil, err
	}
	if err := decodeField(raw, fieldUserEmbeddings, &rec.UserEmbeddings); err != nil {
		return nil, err
	}
	if err := decodeField(raw, itemsField, &rec.ItemEmbeddings); err != nil {
		return nil, err
	}
	if err := decodeField(raw, fieldSimilarityCache, &rec.SimilarityCache); err != nil {
		return nil, err
	}
	if err := decodeField(raw, fieldTimestamp, &rec.Timestamp); err != nil {
		return nil, err
	}

	savedAt, err := parseTimestamp(rec.Timestamp)
	if err != nil {
		return nil, err
	}

	users := make(map[string]Embedding, len(rec.UserEmbeddings))
	for id, v := range rec.UserEmbeddings {
		users[id] = Embedding(v)
	}
	items := make(map[string]Embedding, len(rec.ItemEmbeddings))
	for id, v := range rec.ItemEmbeddings {
		items[id] = Embedding(v)
	}

	known := func(kind Kind, id string) bool {
		if kind == KindUser {
			_, ok := users[id]
			return ok
		}
		_, ok := items[id]
		return ok
	}
	entries := make(map[PairKey]float64, len(rec.SimilarityCache))
	for s, v := range rec.SimilarityCache {
		key, err := ParsePairKey(s, known)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
		}
		entries[key] = v
	}

	version := rec.Version
	if version == "" {
		version = cfg.Version
	}

	return &Model{
		Version:    version,
		Users:      users,
		Items:      items,
		Similarity: restoreSimilarityCache(cfg, users, items, entries),
		TrainedAt:  savedAt,
	}, nil
}

func decodeField(raw map[string]json.RawMessage, field string, dst any) error {
	if err := json.Unmarshal(raw[field], dst); err != nil {
		return fmt.Errorf("%w: field %q: %w", ErrInvalidModel, field, err)
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q is not ISO-8601", ErrInvalidModel, s)
}
