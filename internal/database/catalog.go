// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package database

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

// activePriceExpr is the latest active listing price of n, or 0.
const activePriceExpr = `COALESCE((SELECT ml.price FROM marketplace_listings ml ` +
	`WHERE ml.nft_id = n.id AND ml.status = 'active' ` +
	`ORDER BY ml.created_at DESC LIMIT 1), 0)::float8 AS price`

func (s *Store) itemsQuery() sq.SelectBuilder {
	b := s.sb.Select(
		"n.id::text",
		"n.name",
		"COALESCE(n.description, '')",
		"n.image_url",
		"n.creator_id::text",
		"n.owner_id::text",
		"COALESCE(n.tags, '{}')",
		"n.attributes",
		activePriceExpr,
		"n.views",
		"n.likes",
		"n.created_at",
		"n.chain",
		"n.collection_id::text",
	).
		From("nfts n").
		OrderBy("n.created_at DESC")
	if s.cfg.ItemsLimit > 0 {
		b = b.Limit(s.cfg.ItemsLimit)
	}
	return b
}

func (s *Store) usersQuery() sq.SelectBuilder {
	b := s.sb.Select(
		"u.id::text",
		"u.wallet_address",
		"u.created_at",
		"up.preferred_categories",
		"up.preferred_price_range",
	).
		From("users u").
		LeftJoin("user_preferences up ON u.id = up.user_id").
		OrderBy("u.created_at")
	if s.cfg.UsersLimit > 0 {
		b = b.Limit(s.cfg.UsersLimit)
	}
	return b
}

func (s *Store) interactionsQuery(cutoff time.Time) sq.SelectBuilder {
	b := s.sb.Select(
		"user_id::text",
		"nft_id::text",
		"interaction_type",
		"interaction_value::float8",
		"created_at",
	).
		From("user_interactions").
		Where(sq.Gt{"created_at": cutoff}).
		OrderBy("created_at DESC")
	if s.cfg.InteractionsLimit > 0 {
		b = b.Limit(s.cfg.InteractionsLimit)
	}
	return b
}

// cutoff is the start of the interaction lookback window.
func (s *Store) cutoff() time.Time {
	return s.now().Add(-s.cfg.InteractionLookback)
}

// Items returns the newest NFTs, up to the configured limit.
func (s *Store) Items(ctx context.Context) ([]recommend.Item, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var items []recommend.Item
	err := s.query(ctx, "fetch_items", s.itemsQuery(), func(rows pgx.Rows) error {
		var (
			it    recommend.Item
			tags  []string
			attrs []byte
		)
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.ImageURL,
			&it.CreatorID, &it.OwnerID, &tags, &attrs, &it.Price,
			&it.Views, &it.Likes, &it.CreatedAt, &it.Chain, &it.CollectionID,
		); err != nil {
			return err
		}
		it.Tags = recommend.NewTags(tags...)
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &it.Attributes); err != nil {
				s.logger.Warn().Err(err).Str("nft_id", it.ID).Msg("Ignoring malformed attributes")
				it.Attributes = nil
			}
		}
		items = append(items, it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Users returns users with their stated preferences.
func (s *Store) Users(ctx context.Context) ([]recommend.User, error) {
	var users []recommend.User
	err := s.query(ctx, "fetch_users", s.usersQuery(), func(rows pgx.Rows) error {
		var (
			u          recommend.User
			categories []string
			priceRange []byte
		)
		if err := rows.Scan(&u.ID, &u.WalletAddress, &u.CreatedAt, &categories, &priceRange); err != nil {
			return err
		}
		u.Preferences.Categories = categories
		if len(priceRange) > 0 && string(priceRange) != "null" {
			var pr recommend.PriceRange
			if err := json.Unmarshal(priceRange, &pr); err != nil {
				s.logger.Warn().Err(err).Str("user_id", u.ID).Msg("Ignoring malformed price range")
			} else {
				u.Preferences.PriceRange = &pr
			}
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Interactions returns events inside the lookback window, newest first.
func (s *Store) Interactions(ctx context.Context) ([]recommend.Interaction, error) {
	var out []recommend.Interaction
	err := s.query(ctx, "fetch_interactions", s.interactionsQuery(s.cutoff()), func(rows pgx.Rows) error {
		var (
			in  recommend.Interaction
			typ string
		)
		if err := rows.Scan(&in.UserID, &in.ItemID, &typ, &in.Value, &in.Timestamp); err != nil {
			return err
		}
		in.Type = recommend.InteractionType(typ)
		out = append(out, in)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

var _ recommend.DataProvider = (*Store)(nil)
