// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

/*
Package config loads service configuration with koanf.

Sources are layered, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths that exists
 3. Environment variables listed in the envMappings whitelist

Comma-separated env values for list fields (ALLOWED_ORIGINS,
RECOMMEND_CATEGORIES, RECOMMEND_INTEREST_TAGS) are split after loading.
Validate runs last and rejects the whole configuration on the first error.

# Environment Variables

Server:
  - PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
  - ALLOWED_ORIGINS: comma-separated CORS origins
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Database (PostgreSQL):
  - DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD, DB_SSLMODE
  - DB_MAX_CONNS, DB_ITEMS_LIMIT, DB_USERS_LIMIT, DB_INTERACTIONS_LIMIT
  - DB_INTERACTION_LOOKBACK

Redis:
  - REDIS_ENABLED, REDIS_HOST, REDIS_PORT, REDIS_DB, REDIS_PASSWORD
  - MEMO_TTL

Recommendation engine:
  - RECOMMEND_TRAIN_INTERVAL, RECOMMEND_TRAIN_ON_STARTUP, RECOMMEND_RETRAIN_THROTTLE
  - RECOMMEND_MODEL_STORE (file|badger), RECOMMEND_MODEL_PATH
  - RECOMMEND_VERSION, RECOMMEND_SEED
  - RECOMMEND_CATEGORIES, RECOMMEND_INTEREST_TAGS
  - RECOMMEND_SIMILARITY_MODE (eager|lazy), RECOMMEND_SIMILARITY_LRU_SIZE
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT, RECOMMEND_UPDATE_QUEUE
  - RECOMMEND_DIVERSITY_LAMBDA (1 disables MMR reranking of diversified responses)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
