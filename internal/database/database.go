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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Soumyadip-03/NFTGenie/internal/config"
	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
)

// DBTX is the subset of *pgxpool.Pool the store queries through.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides data access for training and the HTTP handlers.
type Store struct {
	db     DBTX
	pool   *pgxpool.Pool
	cfg    config.DatabaseConfig
	sb     sq.StatementBuilderType
	logger zerolog.Logger
	now    func() time.Time
}

// Open connects a pool to cfg and pings it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := New(pool, cfg, logger)
	s.pool = pool

	s.logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Int32("max_conns", poolCfg.MaxConns).
		Msg("Database connection established")

	return s, nil
}

// New wraps an existing connection. Close is a no-op for stores built this
// way unless db is the pool passed to Open.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(db DBTX, cfg config.DatabaseConfig, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		cfg:    cfg,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.With().Str("component", "database").Logger(),
		now:    time.Now,
	}
}

// Ping checks connectivity. Stores without a pool are always reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// withTimeout bounds a single request-path query.
func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.QueryTimeout)
}

// query runs a select builder and hands each row to scan.
func (s *Store) query(ctx context.Context, op string, b sq.SelectBuilder, scan func(pgx.Rows) error) error {
	start := time.Now()
	err := s.queryRows(ctx, b, scan)
	metrics.RecordDBQuery(op, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) queryRows(ctx context.Context, b sq.SelectBuilder, scan func(pgx.Rows) error) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Sentinel errors returned by the write path.
var (
	// ErrUnknownUser means no user matches the given id or wallet address.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownItem means the NFT id is malformed or does not exist.
	ErrUnknownItem = errors.New("unknown nft")
)

// PostgreSQL error codes mapped to sentinels.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRep      = "22P02"
)

// classify maps constraint failures of the interaction upsert to sentinels.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgNotNullViolation:
		if pgErr.ColumnName == "nft_id" {
			return fmt.Errorf("%w: %s", ErrUnknownItem, pgErr.Message)
		}
		return fmt.Errorf("%w: %s", ErrUnknownUser, pgErr.Message)
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == "user_interactions_user_id_fkey" {
			return fmt.Errorf("%w: %s", ErrUnknownUser, pgErr.Message)
		}
		return fmt.Errorf("%w: %s", ErrUnknownItem, pgErr.Message)
	case pgInvalidTextRep:
		return fmt.Errorf("%w: %s", ErrUnknownItem, pgErr.Message)
	default:
		return err
	}
}
