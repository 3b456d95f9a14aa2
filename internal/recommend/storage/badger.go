// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Keys used in the BadgerDB database.
var (
	modelKey    = []byte("model:current")
	metadataKey = []byte("model:meta")
)

// BadgerStore keeps the current model in BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
	now    func() time.Time
}

// OpenBadgerStore opens (or creates) a database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true, now: time.Now}, nil
}

// NewBadgerStore wraps an existing database. Close leaves db open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

// SaveModel stores data and its metadata in one transaction.
func (s *BadgerStore) SaveModel(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	meta := newMetadata(data, s.now())
	metaBytes, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(modelKey, data); err != nil {
			return err
		}
		return txn.Set(metadataKey, metaBytes)
	})
	if err != nil {
		return fmt.Errorf("store model: %w", err)
	}
	return nil
}

// LoadModel returns the stored model bytes or ErrModelNotFound.
func (s *BadgerStore) LoadModel(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		meta *Metadata
	)
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		if data, err = getValue(txn, modelKey); err != nil {
			return err
		}
		meta, err = getMetadata(txn)
		if errors.Is(err, ErrModelNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := verify(data, meta); err != nil {
		return nil, err
	}
	return data, nil
}

// Metadata returns the metadata of the stored model.
func (s *BadgerStore) Metadata(ctx context.Context) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var meta *Metadata
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		meta, err = getMetadata(txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

func getValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return item.ValueCopy(nil)
}

func getMetadata(txn *badger.Txn) (*Metadata, error) {
	raw, err := getValue(txn, metadataKey)
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}
