// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const metaSuffix = ".meta.json"

// FileStore keeps the current model in a single file.
type FileStore struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
}

// NewFileStore creates a store writing to path. The parent directory is created if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{path: path, now: time.Now}, nil
}

// Path returns the model file location.
func (s *FileStore) Path() string {
	return s.path
}

// SaveModel replaces the stored model. Readers see either the old or the new file, never a partial one.
func (s *FileStore) SaveModel(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meta := newMetadata(data, s.now())
	metaBytes, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	// Sidecar first: an interrupted save fails checksum verification on load.
	if err := writeAtomic(s.path+metaSuffix, metaBytes); err != nil {
		return err
	}
	return writeAtomic(s.path, data)
}

// LoadModel returns the stored model bytes or ErrModelNotFound.
func (s *FileStore) LoadModel(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	meta, err := s.readMetadata()
	if err != nil {
		return nil, err
	}
	if err := verify(data, meta); err != nil {
		return nil, err
	}
	return data, nil
}

// Metadata returns the sidecar for the stored model.
func (s *FileStore) Metadata(ctx context.Context) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, err := s.readMetadata()
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrModelNotFound
	}
	return meta, nil
}

// readMetadata returns nil, nil when there is no sidecar.
func (s *FileStore) readMetadata() (*Metadata, error) {
	raw, err := os.ReadFile(s.path + metaSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) } //nolint:errcheck // best effort

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // sync error takes precedence
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename model file: %w", err)
	}
	return nil
}
