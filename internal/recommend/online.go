// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"math/rand"
	"sync"
)

// NoiseSource supplies standard-normal samples for the online updater.
type NoiseSource interface {
	NormFloat64() float64
}

// lockedRand is a math/rand source safe for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededNoise returns a deterministic NoiseSource.
func NewSeededNoise(seed int64) NoiseSource {
	return &lockedRand{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // perturbation noise, not security sensitive
	}
}

func (r *lockedRand) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.NormFloat64()
}

// Perturb returns decay*old + scale*n for each dimension, with n drawn from noise.
// old is not modified.
func Perturb(old Embedding, decay, scale float64, noise NoiseSource) Embedding {
	out := make(Embedding, len(old))
	for i, v := range old {
		out[i] = decay*v + scale*noise.NormFloat64()
	}
	return out
}
