// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

//go:build integration

// Package testinfra starts throwaway PostgreSQL and Redis containers for
// integration tests.
//
// Everything here sits behind the integration build tag:
//
//	go test -tags integration ./...
//
// Tests call SkipIfNoDocker first so the suite degrades to skips on machines
// without a Docker daemon.
//
//	pg, err := testinfra.NewPostgresContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, pg)
//	store, err := database.Open(ctx, pg.DatabaseConfig(), zerolog.Nop())
package testinfra
