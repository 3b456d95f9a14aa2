// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging or production

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatabaseConfig holds PostgreSQL connection and query settings.
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Name     string `koanf:"name"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`

	// MaxConns bounds the pgx pool.
	MaxConns int32 `koanf:"max_conns"`

	// ItemsLimit, UsersLimit and InteractionsLimit cap training snapshot queries.
	ItemsLimit        uint64 `koanf:"items_limit"`
	UsersLimit        uint64 `koanf:"users_limit"`
	InteractionsLimit uint64 `koanf:"interactions_limit"`

	// InteractionLookback is the training and stats window.
	InteractionLookback time.Duration `koanf:"interaction_lookback"`

	// QueryTimeout bounds single queries issued by request handlers.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// ConnString returns a postgres:// URL for pgxpool.ParseConfig.
func (d DatabaseConfig) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	if d.MaxConns > 0 {
		q.Set("pool_max_conns", fmt.Sprint(d.MaxConns))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig holds memo backend settings.
type RedisConfig struct {
	// Enabled selects Redis; when false or unreachable the in-memory memo is used.
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	DB       int    `koanf:"db"`
	Password string `koanf:"password"`

	// MemoTTL is how long recommendation responses are memoized.
	MemoTTL time.Duration `koanf:"memo_ttl"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// RecommendConfig holds engine and training schedule settings.
type RecommendConfig struct {
	// TrainInterval is how often the supervisor retrains. Zero disables periodic training.
	TrainInterval time.Duration `koanf:"train_interval"`

	// TrainOnStartup forces a training run even when a stored model loads.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// RetrainThrottle is the minimum age of the last training before
	// POST /train without force_retrain starts another run.
	RetrainThrottle time.Duration `koanf:"retrain_throttle"`

	// MinInteractions is required before training proceeds.
	MinInteractions int `koanf:"min_interactions"`

	// ModelStore is "file" or "badger".
	ModelStore string `koanf:"model_store"`

	// ModelPath is the model file (file store) or database directory (badger store).
	ModelPath string `koanf:"model_path"`

	Version string `koanf:"version"`
	Seed    int64  `koanf:"seed"`

	// Categories fixes the embedding layout; InterestTags drives the content strategy.
	Categories   []string `koanf:"categories"`
	InterestTags []string `koanf:"interest_tags"`

	SimilarityMode    string `koanf:"similarity_mode"`
	SimilarityLRUSize int    `koanf:"similarity_lru_size"`

	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`

	// UpdateQueueSize bounds pending online updates.
	UpdateQueueSize int `koanf:"update_queue_size"`

	// DiversityLambda is the MMR relevance weight applied to diversified
	// responses. 1 keeps the ranked order untouched.
	DiversityLambda float64 `koanf:"diversity_lambda"`
}
