// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

/*
Package database reads the marketplace's PostgreSQL tables for training and
writes interaction events.

The Store uses a pgx connection pool and builds every statement with
squirrel using dollar placeholders:

	store, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
	    return err
	}
	defer store.Close()

	engine.SetDataProvider(database.NewBreakerProvider(store, logger))

Tables read:

  - nfts joined with users for the creator wallet, newest first
  - users joined with user_preferences (text[] categories, jsonb price range)
  - user_interactions within the configured lookback window

Interaction writes are upserts keyed on (user_id, nft_id, interaction_type):
a repeated event adds its value to the stored one and refreshes created_at.

Store implements recommend.DataProvider. BreakerProvider wraps any
DataProvider in a sony/gobreaker circuit breaker so repeated database
failures stop scheduled retraining from hammering the database.
*/
package database
