// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

/*
Command server runs the NFTGenie recommendation API.

Startup order:

 1. Load configuration (defaults, config.yaml or CONFIG_PATH, environment).
 2. Initialize zerolog.
 3. Open the PostgreSQL pool.
 4. Connect the response memo: Redis when enabled and reachable, otherwise
    the in-process memo.
 5. Open the model store and build the engine with the default strategies.
    Training reads users, items and interactions through a circuit breaker.
 6. Start the supervisor tree: the recommend service restores the stored
    model or trains, the interaction worker applies online updates and the
    HTTP server serves the API.

SIGINT and SIGTERM cancel the tree; each service gets the configured
shutdown timeout.

Common environment variables:

	PORT, HTTP_HOST                    listen address (default 0.0.0.0:5000)
	DB_HOST, DB_PORT, DB_NAME,
	DB_USER, DB_PASSWORD               PostgreSQL connection
	REDIS_ENABLED, REDIS_HOST,
	REDIS_PORT, REDIS_DB               response memo
	ALLOWED_ORIGINS                    comma-separated CORS origins
	RECOMMEND_MODEL_STORE              file or badger
	RECOMMEND_MODEL_PATH               model file or badger directory
	LOG_LEVEL, LOG_FORMAT              logging
*/
package main
