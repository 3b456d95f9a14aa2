// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRedis(); err != nil {
		return err
	}
	return c.validateRecommend()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitReqs)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	if c.Server.Environment == "production" {
		for _, o := range c.Server.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("ALLOWED_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	d := c.Database
	if d.Host == "" || d.Name == "" || d.User == "" {
		return fmt.Errorf("DB_HOST, DB_NAME and DB_USER are required")
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", d.Port)
	}
	if d.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", d.MaxConns)
	}
	if d.ItemsLimit == 0 || d.UsersLimit == 0 || d.InteractionsLimit == 0 {
		return fmt.Errorf("database query limits must be positive")
	}
	if d.InteractionLookback <= 0 {
		return fmt.Errorf("DB_INTERACTION_LOOKBACK must be positive, got %v", d.InteractionLookback)
	}
	if d.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive, got %v", d.QueryTimeout)
	}
	return nil
}

func (c *Config) validateRedis() error {
	if !c.Redis.Enabled {
		return nil
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when REDIS_ENABLED=true")
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535, got %d", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative, got %d", c.Redis.DB)
	}
	if c.Redis.MemoTTL <= 0 {
		return fmt.Errorf("MEMO_TTL must be positive, got %v", c.Redis.MemoTTL)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.TrainInterval < 0 {
		return fmt.Errorf("RECOMMEND_TRAIN_INTERVAL must not be negative, got %v", r.TrainInterval)
	}
	if r.RetrainThrottle < 0 {
		return fmt.Errorf("RECOMMEND_RETRAIN_THROTTLE must not be negative, got %v", r.RetrainThrottle)
	}
	switch r.ModelStore {
	case "file", "badger":
	default:
		return fmt.Errorf("RECOMMEND_MODEL_STORE must be file or badger, got %q", r.ModelStore)
	}
	if r.ModelPath == "" {
		return fmt.Errorf("RECOMMEND_MODEL_PATH is required")
	}
	if r.UpdateQueueSize < 1 {
		return fmt.Errorf("RECOMMEND_UPDATE_QUEUE must be positive, got %d", r.UpdateQueueSize)
	}
	if r.DiversityLambda < 0 || r.DiversityLambda > 1 {
		return fmt.Errorf("RECOMMEND_DIVERSITY_LAMBDA must be within [0,1], got %v", r.DiversityLambda)
	}
	// Categories, limits and similarity settings are checked by recommend.Config.Validate.
	return nil
}
