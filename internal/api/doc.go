// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

/*
Package api serves the recommendation engine over HTTP.

# Endpoints

	GET  /                          health (alias)
	GET  /health                    model version, last training time, memo status
	POST /recommend                 personalized recommendations
	POST /interaction               record an interaction and update the user online
	POST /train                     start background training, throttled unless forced
	GET  /explain/{userID}/{nftID}  factors behind a recommendation
	GET  /trending?limit=N          trending items
	GET  /similar/{nftID}?limit=N   most similar items from the similarity cache
	GET  /stats                     dataset, model, memo and endpoint statistics
	GET  /metrics                   Prometheus exposition

User ids in request bodies and paths may be a user UUID or a wallet address.
Unknown users are served as cold-start users by /recommend and /explain and
rejected with 404 by /interaction.

# Responses

Successful responses are plain JSON documents. Errors share one envelope:

	{"status": "error", "error": {"code": "VALIDATION_ERROR", "message": "...", "details": [...]}}

# Middleware

Requests pass through request id, real IP, panic recovery, CORS, per-IP rate
limiting (go-chi/httprate), Prometheus metrics and the in-process
performance monitor, in that order.
*/
package api
