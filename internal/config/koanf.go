// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/nftgenie/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			Environment:     "development",
			CORSOrigins:     []string{"http://localhost:3000"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			Host:                "localhost",
			Port:                5432,
			Name:                "nftgenie",
			User:                "postgres",
			SSLMode:             "disable",
			MaxConns:            10,
			ItemsLimit:          1000,
			UsersLimit:          1000,
			InteractionsLimit:   10000,
			InteractionLookback: 30 * 24 * time.Hour,
			QueryTimeout:        10 * time.Second,
		},
		Redis: RedisConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    6379,
			MemoTTL: 300 * time.Second,
		},
		Recommend: RecommendConfig{
			TrainInterval:     24 * time.Hour,
			RetrainThrottle:   6 * time.Hour,
			ModelStore:        "file",
			ModelPath:         "models/recommendation_model.json",
			Version:           "1.0.0",
			Seed:              42,
			Categories:        []string{"art", "gaming", "music", "collectible"},
			InterestTags:      []string{"art", "collectible"},
			SimilarityMode:    "eager",
			SimilarityLRUSize: 100000,
			DefaultLimit:      10,
			MaxLimit:          100,
			UpdateQueueSize:   1024,
			DiversityLambda:   1,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths may arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"recommend.categories",
	"recommend.interest_tags",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := splitList(s)
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envMappings whitelists environment variables. Anything else is ignored.
var envMappings = map[string]string{
	"port":                "server.port",
	"http_host":           "server.host",
	"http_timeout":        "server.timeout",
	"environment":         "server.environment",
	"allowed_origins":     "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"db_host":                 "database.host",
	"db_port":                 "database.port",
	"db_name":                 "database.name",
	"db_user":                 "database.user",
	"db_password":             "database.password",
	"db_sslmode":              "database.sslmode",
	"db_max_conns":            "database.max_conns",
	"db_items_limit":          "database.items_limit",
	"db_users_limit":          "database.users_limit",
	"db_interactions_limit":   "database.interactions_limit",
	"db_interaction_lookback": "database.interaction_lookback",
	"db_query_timeout":        "database.query_timeout",

	"redis_enabled":  "redis.enabled",
	"redis_host":     "redis.host",
	"redis_port":     "redis.port",
	"redis_db":       "redis.db",
	"redis_password": "redis.password",
	"memo_ttl":       "redis.memo_ttl",

	"recommend_train_interval":      "recommend.train_interval",
	"recommend_train_on_startup":    "recommend.train_on_startup",
	"recommend_retrain_throttle":    "recommend.retrain_throttle",
	"recommend_min_interactions":    "recommend.min_interactions",
	"recommend_model_store":         "recommend.model_store",
	"recommend_model_path":          "recommend.model_path",
	"recommend_version":             "recommend.version",
	"recommend_seed":                "recommend.seed",
	"recommend_categories":          "recommend.categories",
	"recommend_interest_tags":       "recommend.interest_tags",
	"recommend_similarity_mode":     "recommend.similarity_mode",
	"recommend_similarity_lru_size": "recommend.similarity_lru_size",
	"recommend_default_limit":       "recommend.default_limit",
	"recommend_max_limit":           "recommend.max_limit",
	"recommend_update_queue":        "recommend.update_queue_size",
	"recommend_diversity_lambda":    "recommend.diversity_lambda",
}

// envTransformFunc maps a whitelisted env var to its koanf path.
// Returning "" makes koanf skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
