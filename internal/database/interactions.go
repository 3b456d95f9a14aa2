// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// upsertSuffix accumulates repeated events of the same type.
const upsertSuffix = "ON CONFLICT (user_id, nft_id, interaction_type) DO UPDATE SET " +
	"interaction_value = user_interactions.interaction_value + EXCLUDED.interaction_value, " +
	"created_at = NOW()"

// InteractionStats summarizes the lookback window.
type InteractionStats struct {
	TotalUsers          int64   `json:"total_users"`
	TotalItems          int64   `json:"total_nfts"`
	TotalInteractions   int64   `json:"total_interactions"`
	AvgInteractionValue float64 `json:"avg_interaction_value"`
}

func (s *Store) resolveUserQuery(ref string) sq.SelectBuilder {
	return s.sb.Select("id::text").
		From("users").
		Where(sq.Or{
			sq.Expr("id::text = ?", ref),
			sq.Expr("lower(wallet_address) = lower(?)", ref),
		}).
		Limit(1)
}

func (s *Store) ownedQuery(userID string) sq.SelectBuilder {
	return s.sb.Select("id::text").
		From("nfts").
		Where(sq.Expr("owner_id::text = ?", userID))
}

func (s *Store) upsertInteraction(in recommend.Interaction) sq.InsertBuilder {
	return s.sb.Insert("user_interactions").
		Columns("user_id", "nft_id", "interaction_type", "interaction_value").
		Values(sq.Expr("?::uuid", in.UserID), sq.Expr("?::uuid", in.ItemID), string(in.Type), in.Value).
		Suffix(upsertSuffix)
}

func (s *Store) statsQuery(cutoff time.Time) sq.SelectBuilder {
	return s.sb.Select(
		"COUNT(DISTINCT user_id)",
		"COUNT(DISTINCT nft_id)",
		"COUNT(*)",
		"COALESCE(AVG(interaction_value), 0)::float8",
	).
		From("user_interactions").
		Where(sq.Gt{"created_at": cutoff})
}

// ResolveUserID maps a user id or wallet address to the user id.
// Wallet addresses compare case-insensitively.
func (s *Store) ResolveUserID(ctx context.Context, ref string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sql, args, err := s.resolveUserQuery(ref).ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	start := time.Now()
	var id string
	err = s.db.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.RecordDBQuery("resolve_user", time.Since(start), nil)
		return "", fmt.Errorf("%w: %s", ErrUnknownUser, ref)
	}
	metrics.RecordDBQuery("resolve_user", time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("resolve user: %w", err)
	}
	return id, nil
}

// OwnedItemIDs returns the ids of NFTs currently held by userID.
func (s *Store) OwnedItemIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	owned := make(map[string]struct{})
	err := s.query(ctx, "owned_items", s.ownedQuery(userID), func(rows pgx.Rows) error {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		owned[id] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return owned, nil
}

// RecordInteraction upserts one event. Unknown users or NFTs surface as
// ErrUnknownUser or ErrUnknownItem.
func (s *Store) RecordInteraction(ctx context.Context, in recommend.Interaction) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sql, args, err := s.upsertInteraction(in).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	start := time.Now()
	_, err = s.db.Exec(ctx, sql, args...)
	metrics.RecordDBQuery("record_interaction", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("record interaction: %w", classify(err))
	}
	return nil
}

// InteractionStats aggregates the lookback window.
func (s *Store) InteractionStats(ctx context.Context) (InteractionStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sql, args, err := s.statsQuery(s.cutoff()).ToSql()
	if err != nil {
		return InteractionStats{}, fmt.Errorf("build query: %w", err)
	}

	start := time.Now()
	var st InteractionStats
	err = s.db.QueryRow(ctx, sql, args...).Scan(
		&st.TotalUsers, &st.TotalItems, &st.TotalInteractions, &st.AvgInteractionValue,
	)
	metrics.RecordDBQuery("interaction_stats", time.Since(start), err)
	if err != nil {
		return InteractionStats{}, fmt.Errorf("interaction stats: %w", err)
	}
	return st, nil
}
