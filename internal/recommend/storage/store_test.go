// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var fixedNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func newInMemoryBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// storeCases runs the same contract tests against every backend.
func storeCases(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"file": func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "models", "model.json"))
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			s.now = func() time.Time { return fixedNow }
			return s
		},
		"badger": func(t *testing.T) Store {
			s := NewBadgerStore(newInMemoryBadger(t))
			s.now = func() time.Time { return fixedNow }
			return s
		},
	}
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	for name, open := range storeCases(t) {
		open := open
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			if _, err := s.LoadModel(context.Background()); !errors.Is(err, ErrModelNotFound) {
				t.Errorf("LoadModel error = %v, want ErrModelNotFound", err)
			}
			if _, err := s.Metadata(context.Background()); !errors.Is(err, ErrModelNotFound) {
				t.Errorf("Metadata error = %v, want ErrModelNotFound", err)
			}
		})
	}
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	for name, open := range storeCases(t) {
		open := open
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)
			ctx := context.Background()

			first := []byte(`{"version":"1.0.0"}`)
			second := []byte(`{"version":"1.0.1"}`)

			if err := s.SaveModel(ctx, first); err != nil {
				t.Fatalf("SaveModel: %v", err)
			}
			if err := s.SaveModel(ctx, second); err != nil {
				t.Fatalf("SaveModel: %v", err)
			}

			got, err := s.LoadModel(ctx)
			if err != nil {
				t.Fatalf("LoadModel: %v", err)
			}
			if !bytes.Equal(got, second) {
				t.Errorf("LoadModel = %s, want %s", got, second)
			}

			meta, err := s.Metadata(ctx)
			if err != nil {
				t.Fatalf("Metadata: %v", err)
			}
			if meta.Checksum != checksum(second) {
				t.Errorf("Checksum = %s, want %s", meta.Checksum, checksum(second))
			}
			if meta.SizeBytes != int64(len(second)) {
				t.Errorf("SizeBytes = %d, want %d", meta.SizeBytes, len(second))
			}
			if !meta.SavedAt.Equal(fixedNow) {
				t.Errorf("SavedAt = %v, want %v", meta.SavedAt, fixedNow)
			}
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()

	for name, open := range storeCases(t) {
		open := open
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if err := s.SaveModel(ctx, []byte("{}")); !errors.Is(err, context.Canceled) {
				t.Errorf("SaveModel error = %v, want context.Canceled", err)
			}
			if _, err := s.LoadModel(ctx); !errors.Is(err, context.Canceled) {
				t.Errorf("LoadModel error = %v, want context.Canceled", err)
			}
		})
	}
}

func TestFileStore_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.SaveModel(ctx, []byte(`{"version":"1.0.0"}`)); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"version":"tampered"}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := s.LoadModel(ctx); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("LoadModel error = %v, want ErrChecksumMismatch", err)
	}
}

func TestFileStore_LoadWithoutSidecar(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.json")
	want := []byte(`{"version":"1.0.0"}`)
	if err := os.WriteFile(path, want, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	got, err := s.LoadModel(context.Background())
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("LoadModel = %s, want %s", got, want)
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "model.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.SaveModel(context.Background(), []byte(`{}`)); err != nil {
			t.Fatalf("SaveModel: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory entries = %v, want model.json and its sidecar", names)
	}
}

func TestBadgerStore_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	db := newInMemoryBadger(t)
	s := NewBadgerStore(db)
	ctx := context.Background()

	if err := s.SaveModel(ctx, []byte(`{"version":"1.0.0"}`)); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set(modelKey, []byte(`{"version":"tampered"}`))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := s.LoadModel(ctx); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("LoadModel error = %v, want ErrChecksumMismatch", err)
	}
}

func TestBadgerStore_CloseLeavesSharedDBOpen(t *testing.T) {
	t.Parallel()

	db := newInMemoryBadger(t)
	if err := NewBadgerStore(db).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if db.IsClosed() {
		t.Error("shared database was closed")
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file", Config{Backend: BackendFile, Path: filepath.Join(dir, "a", "model.json")}, false},
		{"default backend", Config{Path: filepath.Join(dir, "b", "model.json")}, false},
		{"badger", Config{Backend: BackendBadger, Path: filepath.Join(dir, "badger")}, false},
		{"empty path", Config{Backend: BackendFile}, true},
		{"unknown backend", Config{Backend: "s3", Path: dir}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := Open(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				if err := s.Close(); err != nil {
					t.Errorf("Close: %v", err)
				}
			}
		})
	}
}
