// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

var (
	// ErrModelNotFound is returned by LoadModel when nothing has been saved yet.
	ErrModelNotFound = errors.New("model not found")

	// ErrChecksumMismatch is returned when stored bytes do not match their metadata.
	ErrChecksumMismatch = errors.New("model checksum mismatch")
)

// Metadata describes the stored model.
type Metadata struct {
	// Checksum is the hex SHA-256 of the stored bytes.
	Checksum string `json:"checksum"`

	// SizeBytes is the stored size.
	SizeBytes int64 `json:"size_bytes"`

	// SavedAt is when SaveModel completed.
	SavedAt time.Time `json:"saved_at"`
}

// Store is a model store with an explicit lifecycle.
type Store interface {
	SaveModel(ctx context.Context, data []byte) error
	LoadModel(ctx context.Context) ([]byte, error)
	Metadata(ctx context.Context) (*Metadata, error)
	Close() error
}

// Config selects and locates a backend.
type Config struct {
	// Backend is BackendFile or BackendBadger.
	Backend string

	// Path is the model file for BackendFile or the database directory for BackendBadger.
	Path string
}

// Open creates the store described by cfg.
func Open(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("model store path must not be empty")
	}
	switch cfg.Backend {
	case BackendFile, "":
		s, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendBadger:
		s, err := OpenBadgerStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown model store backend %q", cfg.Backend)
	}
}

func newMetadata(data []byte, savedAt time.Time) Metadata {
	return Metadata{
		Checksum:  checksum(data),
		SizeBytes: int64(len(data)),
		SavedAt:   savedAt.UTC(),
	}
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// verify checks data against meta. A nil meta is accepted so that model
// files written by hand or by older tools still load.
func verify(data []byte, meta *Metadata) error {
	if meta == nil {
		return nil
	}
	if got := checksum(data); got != meta.Checksum {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, meta.Checksum, got)
	}
	return nil
}
