// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package reranking reorders an already scored recommendation list to trade
// some relevance for diversity.
//
// # Maximal Marginal Relevance
//
// MMR greedily picks the candidate maximizing
//
//	lambda * score(i) - (1-lambda) * max(sim(i, s)) for s in selected
//
// lambda = 1 keeps the input order; lambda = 0 only looks at diversity.
// Similarity between two NFTs is pluggable: TagJaccard compares tag sets,
// EmbeddingCosine compares item embeddings of a trained model and falls back
// to tags for items the model has not seen.
//
//	mmr := reranking.NewMMR(0.7, reranking.EmbeddingCosine(engine.Snapshot()))
//	recs = mmr.Rerank(recs, 10)
package reranking
