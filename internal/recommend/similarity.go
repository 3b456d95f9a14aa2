// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
)

// Kind distinguishes user pairs from item pairs in the similarity cache.
type Kind uint8

const (
	KindUser Kind = iota + 1
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// legacyItemPrefix is accepted on load for records written before items were called items.
const legacyItemPrefix = "nft"

// PairKey is the canonical key of an unordered same-kind pair: A < B.
type PairKey struct {
	Kind Kind
	A    string
	B    string
}

// NewPairKey orders x and y. It returns false for a self-pair.
func NewPairKey(kind Kind, x, y string) (PairKey, bool) {
	if x == y {
		return PairKey{}, false
	}
	if y < x {
		x, y = y, x
	}
	return PairKey{Kind: kind, A: x, B: y}, true
}

// String renders the persisted form "<kind>_<a>_<b>".
func (k PairKey) String() string {
	return k.Kind.String() + "_" + k.A + "_" + k.B
}

// ParsePairKey parses a persisted similarity key.
//
// Ids may themselves contain underscores, so every split point is tried and
// the one where both halves are known ids of the right kind wins. known may be
// nil, in which case the key must contain exactly one separator after the prefix.
func ParsePairKey(s string, known func(kind Kind, id string) bool) (PairKey, error) {
	prefix, rest, ok := strings.Cut(s, "_")
	if !ok {
		return PairKey{}, fmt.Errorf("similarity key %q: missing kind prefix", s)
	}

	var kind Kind
	switch prefix {
	case "user":
		kind = KindUser
	case "item", legacyItemPrefix:
		kind = KindItem
	default:
		return PairKey{}, fmt.Errorf("similarity key %q: unknown kind %q", s, prefix)
	}

	if known != nil {
		for i := 0; i < len(rest); i++ {
			if rest[i] != '_' {
				continue
			}
			a, b := rest[:i], rest[i+1:]
			if a != "" && b != "" && known(kind, a) && known(kind, b) {
				if key, ok := NewPairKey(kind, a, b); ok {
					return key, nil
				}
			}
		}
	}

	if strings.Count(rest, "_") != 1 {
		return PairKey{}, fmt.Errorf("similarity key %q: cannot split ids", s)
	}
	a, b, _ := strings.Cut(rest, "_")
	if a == "" || b == "" {
		return PairKey{}, fmt.Errorf("similarity key %q: empty id", s)
	}
	key, ok := NewPairKey(kind, a, b)
	if !ok {
		return PairKey{}, fmt.Errorf("similarity key %q: self-pair", s)
	}
	return key, nil
}

// Cosine returns dot(u,v)/(|u||v|), or 0 when either norm is zero.
func Cosine(u, v Embedding) float64 {
	nu, nv := u.Norm(), v.Norm()
	if nu == 0 || nv == 0 {
		return 0
	}
	return u.Dot(v) / (nu * nv)
}

// Neighbor is an id and its similarity to a query id.
type Neighbor struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// SimilarityCache holds pairwise cosine similarities for users and items.
//
// Entries in fixed are computed eagerly after training or restored from a
// saved model. When lru is set, pairs missing from fixed are computed on
// demand against the embeddings captured at construction time and kept in a
// bounded LRU. Both paths return identical values for the same pair.
type SimilarityCache struct {
	users map[string]Embedding
	items map[string]Embedding
	fixed map[PairKey]float64
	lru   *cache.LRU[PairKey, float64]
}

// NewSimilarityCache builds the cache for a freshly trained model.
// In eager mode every unordered pair of each kind is computed now.
func NewSimilarityCache(cfg *Config, users, items map[string]Embedding) *SimilarityCache {
	sc := &SimilarityCache{
		users: users,
		items: items,
		fixed: make(map[PairKey]float64),
	}

	if cfg.Similarity.Mode == SimilarityLazy {
		sc.lru = cache.NewLRU[PairKey, float64](cfg.Similarity.LRUSize, 0)
		return sc
	}

	sc.computeAll(KindUser, users)
	sc.computeAll(KindItem, items)
	return sc
}

// restoreSimilarityCache wraps persisted entries. In lazy mode missing pairs
// are still computed on demand.
func restoreSimilarityCache(cfg *Config, users, items map[string]Embedding, entries map[PairKey]float64) *SimilarityCache {
	sc := &SimilarityCache{
		users: users,
		items: items,
		fixed: entries,
	}
	if sc.fixed == nil {
		sc.fixed = make(map[PairKey]float64)
	}
	if cfg.Similarity.Mode == SimilarityLazy {
		sc.lru = cache.NewLRU[PairKey, float64](cfg.Similarity.LRUSize, 0)
	}
	return sc
}

func (sc *SimilarityCache) computeAll(kind Kind, embeddings map[string]Embedding) {
	ids := sortedIDs(embeddings)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			key, ok := NewPairKey(kind, ids[i], ids[j])
			if !ok {
				continue
			}
			sc.fixed[key] = Cosine(embeddings[ids[i]], embeddings[ids[j]])
		}
	}
}

// Get returns the similarity of x and y. It returns false for self-pairs and
// for pairs that are neither stored nor computable.
func (sc *SimilarityCache) Get(kind Kind, x, y string) (float64, bool) {
	if sc == nil {
		return 0, false
	}
	key, ok := NewPairKey(kind, x, y)
	if !ok {
		return 0, false
	}
	if v, ok := sc.fixed[key]; ok {
		return v, true
	}
	if sc.lru == nil {
		return 0, false
	}
	if v, ok := sc.lru.Get(key); ok {
		return v, true
	}

	embeddings := sc.embeddings(kind)
	a, okA := embeddings[key.A]
	b, okB := embeddings[key.B]
	if !okA || !okB {
		return 0, false
	}
	v := Cosine(a, b)
	sc.lru.Add(key, v)
	return v, true
}

// Len returns the number of materialized entries.
func (sc *SimilarityCache) Len() int {
	if sc == nil {
		return 0
	}
	n := len(sc.fixed)
	if sc.lru != nil {
		n += sc.lru.Len()
	}
	return n
}

// Lazy reports whether missing pairs are computed on demand.
func (sc *SimilarityCache) Lazy() bool {
	return sc != nil && sc.lru != nil
}

// Entries returns a copy of every materialized entry.
func (sc *SimilarityCache) Entries() map[PairKey]float64 {
	out := make(map[PairKey]float64, sc.Len())
	if sc == nil {
		return out
	}
	for k, v := range sc.fixed {
		out[k] = v
	}
	if sc.lru != nil {
		sc.lru.Range(func(k PairKey, v float64) bool {
			out[k] = v
			return true
		})
	}
	return out
}

// MostSimilar returns up to k ids of the given kind ranked by similarity to id.
// Ties keep lexicographic id order.
func (sc *SimilarityCache) MostSimilar(kind Kind, id string, k int) []Neighbor {
	if sc == nil || k <= 0 {
		return nil
	}
	embeddings := sc.embeddings(kind)
	if _, ok := embeddings[id]; !ok {
		return nil
	}

	neighbors := make([]Neighbor, 0, len(embeddings))
	for _, other := range sortedIDs(embeddings) {
		if other == id {
			continue
		}
		if v, ok := sc.Get(kind, id, other); ok {
			neighbors = append(neighbors, Neighbor{ID: other, Score: v})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Score > neighbors[j].Score
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func (sc *SimilarityCache) embeddings(kind Kind) map[string]Embedding {
	if kind == KindUser {
		return sc.users
	}
	return sc.items
}

func sortedIDs(embeddings map[string]Embedding) []string {
	ids := make([]string, 0, len(embeddings))
	for id := range embeddings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
