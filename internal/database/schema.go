// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package database

import (
	"context"
	"fmt"
)

// Schema is the subset of the marketplace schema the store touches. The
// marketplace backend owns migrations; EnsureSchema exists for local
// development and integration tests.
const Schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	wallet_address TEXT NOT NULL UNIQUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_preferences (
	id                    UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id               UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	preferred_categories  TEXT[],
	preferred_price_range JSONB
);

CREATE TABLE IF NOT EXISTS nfts (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name          TEXT NOT NULL,
	description   TEXT,
	image_url     TEXT NOT NULL DEFAULT '',
	creator_id    UUID NOT NULL REFERENCES users(id),
	owner_id      UUID NOT NULL REFERENCES users(id),
	collection_id UUID,
	chain         TEXT NOT NULL DEFAULT 'polygonAmoy',
	views         INTEGER NOT NULL DEFAULT 0,
	likes         INTEGER NOT NULL DEFAULT 0,
	attributes    JSONB,
	tags          TEXT[],
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS marketplace_listings (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	nft_id     UUID NOT NULL REFERENCES nfts(id),
	price      NUMERIC(30, 8) NOT NULL,
	status     TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_interactions (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id           UUID NOT NULL REFERENCES users(id),
	nft_id            UUID NOT NULL REFERENCES nfts(id),
	interaction_type  TEXT NOT NULL,
	interaction_value DOUBLE PRECISION NOT NULL DEFAULT 1,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, nft_id, interaction_type)
);

CREATE INDEX IF NOT EXISTS idx_user_interactions_created_at ON user_interactions (created_at);
CREATE INDEX IF NOT EXISTS idx_nfts_owner_id ON nfts (owner_id);
`

// EnsureSchema creates missing tables and indexes.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	s.logger.Info().Msg("Database schema ensured")
	return nil
}
