// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package storage persists encoded recommendation models.
//
// Both backends implement recommend.ModelStore and keep a single current
// model alongside its Metadata:
//
//   - FileStore: a JSON file written atomically (temp file + rename) with a
//     ".meta.json" sidecar
//   - BadgerStore: two keys in a BadgerDB database, written in one transaction
//
// The stored bytes are the engine's JSON model record and are not
// transformed. Metadata carries a SHA-256 checksum that LoadModel verifies.
//
// # Usage
//
//	store, err := storage.Open(storage.Config{Backend: "file", Path: "/data/model.json"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	engine.SetModelStore(store)
//	if err := engine.Restore(ctx); errors.Is(err, storage.ErrModelNotFound) {
//	    // first start, train instead
//	}
package storage
