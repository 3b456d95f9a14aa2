// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Note: This package depends only on internal/cache for its generic LRU.
// The DataProvider and ModelStore interfaces let the database and storage
// packages plug in without circular imports.

// DefaultStrategy is used when Recommend is called with an empty strategy name.
const DefaultStrategy = "hybrid"

// Engine owns the active model snapshot and the registered strategies.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// Registered strategies by name, plus registration order
	strategies map[string]Strategy
	order      []string
	stratMu    sync.RWMutex

	// Active snapshot. Readers copy the pointer under RLock and release.
	model   *Model
	modelMu sync.RWMutex

	// Training state
	trainMu    sync.Mutex
	status     TrainingStatus
	statusMu   sync.RWMutex
	generation atomic.Int64

	// Online update counter
	onlineUpdates atomic.Int64

	noise NoiseSource
	now   func() time.Time

	dataProvider DataProvider
	modelStore   ModelStore
}

// DataProvider supplies a full training snapshot.
// This is typically implemented by the database layer.
type DataProvider interface {
	// Users returns every user to embed.
	Users(ctx context.Context) ([]User, error)

	// Items returns every item to embed.
	Items(ctx context.Context) ([]Item, error)

	// Interactions returns the interaction events to train on.
	Interactions(ctx context.Context) ([]Interaction, error)
}

// ModelStore persists encoded models.
type ModelStore interface {
	SaveModel(ctx context.Context, data []byte) error
	LoadModel(ctx context.Context) ([]byte, error)
}

// NewEngine creates a new recommendation engine with an empty model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Use provided seed or default for determinism
	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	e := &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		strategies: make(map[string]Strategy),
		model:      emptyModel(cfg.Version),
		noise:      NewSeededNoise(seed),
		now:        time.Now,
	}
	e.status.ModelVersion = cfg.Version
	return e, nil
}

// SetDataProvider sets the data provider used by Train.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetModelStore sets the store used by Train, Persist and Restore.
func (e *Engine) SetModelStore(ms ModelStore) {
	e.modelStore = ms
}

// SetNoiseSource replaces the online updater noise. Intended for tests.
func (e *Engine) SetNoiseSource(n NoiseSource) {
	e.noise = n
}

// SetClock replaces the time source used for item age and timestamps.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// RegisterStrategy adds a strategy. A later registration with the same name replaces the earlier one.
func (e *Engine) RegisterStrategy(s Strategy) {
	e.stratMu.Lock()
	defer e.stratMu.Unlock()

	if _, exists := e.strategies[s.Name()]; !exists {
		e.order = append(e.order, s.Name())
	}
	e.strategies[s.Name()] = s
	e.logger.Info().
		Str("strategy", s.Name()).
		Msg("registered strategy")
}

// Strategies returns the registered strategy names in registration order.
func (e *Engine) Strategies() []string {
	e.stratMu.RLock()
	defer e.stratMu.RUnlock()
	return append([]string(nil), e.order...)
}

func (e *Engine) strategy(name string) (Strategy, error) {
	e.stratMu.RLock()
	defer e.stratMu.RUnlock()

	s, ok := e.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
	}
	return s, nil
}

// Snapshot returns the active model. The returned model must not be modified.
func (e *Engine) Snapshot() *Model {
	e.modelMu.RLock()
	defer e.modelMu.RUnlock()
	return e.model
}

// install swaps in a new snapshot.
func (e *Engine) install(m *Model) {
	e.modelMu.Lock()
	e.model = m
	e.modelMu.Unlock()
	e.generation.Add(1)
}

// Recommend ranks items for userID with the named strategy.
//
// k <= 0 selects Limits.DefaultK and k is capped at Limits.MaxK. An empty
// strategy selects DefaultStrategy. Unknown users get an empty result from
// personalized strategies, not an error.
func (e *Engine) Recommend(ctx context.Context, userID string, items []Item, k int, strategy string) ([]ScoredItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strategy == "" {
		strategy = DefaultStrategy
	}
	s, err := e.strategy(strategy)
	if err != nil {
		return nil, err
	}

	if k <= 0 {
		k = e.config.Limits.DefaultK
	}
	if k > e.config.Limits.MaxK {
		k = e.config.Limits.MaxK
	}

	start := time.Now()
	results := s.Recommend(e.Snapshot(), Query{
		UserID: userID,
		Items:  items,
		K:      k,
		Now:    e.now(),
	})

	e.logger.Debug().
		Str("user_id", userID).
		Str("strategy", strategy).
		Int("candidates", len(items)).
		Int("returned", len(results)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return results, nil
}

// UpdateRealTime nudges the user's embedding after an interaction.
// It returns false and does nothing when the user has no embedding.
//
//nolint:gocritic // hugeParam: interaction passed by value for immutability
func (e *Engine) UpdateRealTime(in Interaction) bool {
	e.modelMu.Lock()
	defer e.modelMu.Unlock()

	old, ok := e.model.Users[in.UserID]
	if !ok {
		return false
	}

	updated := Perturb(old, e.config.Online.Decay, e.config.Online.NoiseScale, e.noise)
	e.model = e.model.withUser(in.UserID, updated)
	e.onlineUpdates.Add(1)
	return true
}

// DiversityScore returns the mean pairwise embedding distance of items.
func (e *Engine) DiversityScore(items []Item) float64 {
	return e.Snapshot().DiversityScore(items)
}

// Explain lists the factors behind recommending itemID to userID.
func (e *Engine) Explain(userID, itemID string) Explanation {
	return e.Snapshot().Explain(userID, itemID)
}

// SimilarItems returns up to k items most similar to itemID.
func (e *Engine) SimilarItems(itemID string, k int) []Neighbor {
	if k <= 0 {
		k = e.config.Limits.DefaultK
	}
	if k > e.config.Limits.MaxK {
		k = e.config.Limits.MaxK
	}
	return e.Snapshot().Similarity.MostSimilar(KindItem, itemID, k)
}

// Fit trains a new model from a full data set and installs it.
// It fails fast with ErrTrainingInProgress if another run holds the lock.
func (e *Engine) Fit(users []User, items []Item, interactions []Interaction) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	e.fit(users, items, interactions)
	return nil
}

// fit must be called with trainMu held.
func (e *Engine) fit(users []User, items []Item, interactions []Interaction) {
	start := time.Now()
	e.setTraining(true)

	m := Build(e.config, users, items, interactions, e.now())
	e.install(m)

	e.statusMu.Lock()
	e.status.IsTraining = false
	e.status.LastError = ""
	e.status.ModelVersion = m.Version
	e.status.Generation = e.generation.Load()
	e.status.LastTrainedAt = m.TrainedAt
	e.status.LastTrainingDurationMS = time.Since(start).Milliseconds()
	e.status.UserCount = len(users)
	e.status.ItemCount = len(items)
	e.status.InteractionCount = len(interactions)
	e.statusMu.Unlock()

	e.logger.Info().
		Int("users", len(m.Users)).
		Int("items", len(m.Items)).
		Int("similarities", m.Similarity.Len()).
		Dur("duration", time.Since(start)).
		Msg("model training complete")
}

// Train loads a snapshot from the data provider, fits a new model and,
// when a model store is set, persists it.
// Returns immediately with ErrTrainingInProgress if training is already running.
func (e *Engine) Train(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	if e.dataProvider == nil {
		return ErrNoDataProvider
	}

	e.logger.Info().Msg("starting model training")

	trainCtx, cancel := context.WithTimeout(ctx, e.config.Training.Timeout)
	defer cancel()

	users, items, interactions, err := e.loadTrainingData(trainCtx)
	if err != nil {
		e.recordTrainingError(err)
		return err
	}

	e.fit(users, items, interactions)

	if e.modelStore != nil {
		if err := e.persist(trainCtx); err != nil {
			// The new model is live; only persistence failed.
			e.recordTrainingError(err)
			return err
		}
	}

	return nil
}

// loadTrainingData fetches users, items and interactions concurrently.
func (e *Engine) loadTrainingData(ctx context.Context) ([]User, []Item, []Interaction, error) {
	var (
		users        []User
		items        []Item
		interactions []Interaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if users, err = e.dataProvider.Users(gctx); err != nil {
			return fmt.Errorf("get users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if items, err = e.dataProvider.Items(gctx); err != nil {
			return fmt.Errorf("get items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if interactions, err = e.dataProvider.Interactions(gctx); err != nil {
			return fmt.Errorf("get interactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	if len(interactions) < e.config.Training.MinInteractions {
		return nil, nil, nil, fmt.Errorf("%w: %d < %d", ErrInsufficientData, len(interactions), e.config.Training.MinInteractions)
	}

	e.logger.Info().
		Int("users", len(users)).
		Int("items", len(items)).
		Int("interactions", len(interactions)).
		Msg("loaded training data")

	return users, items, interactions, nil
}

func (e *Engine) setTraining(v bool) {
	e.statusMu.Lock()
	e.status.IsTraining = v
	e.statusMu.Unlock()
}

func (e *Engine) recordTrainingError(err error) {
	e.statusMu.Lock()
	e.status.IsTraining = false
	e.status.LastError = err.Error()
	e.statusMu.Unlock()

	e.logger.Error().Err(err).Msg("model training failed")
}

// SaveModel writes the active model to w.
// The snapshot pointer is taken under the read lock; encoding runs outside it.
func (e *Engine) SaveModel(w io.Writer) error {
	return EncodeModel(w, e.Snapshot(), e.now())
}

// LoadModel replaces the active model with one read from r.
func (e *Engine) LoadModel(r io.Reader) error {
	m, err := DecodeModel(r, e.config)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	e.install(m)

	e.statusMu.Lock()
	e.status.ModelVersion = m.Version
	e.status.Generation = e.generation.Load()
	e.status.LastTrainedAt = m.TrainedAt
	e.status.UserCount = len(m.Users)
	e.status.ItemCount = len(m.Items)
	e.statusMu.Unlock()

	e.logger.Info().
		Str("version", m.Version).
		Int("users", len(m.Users)).
		Int("items", len(m.Items)).
		Msg("model loaded")
	return nil
}

// Persist saves the active model to the model store.
func (e *Engine) Persist(ctx context.Context) error {
	if e.modelStore == nil {
		return ErrNoModelStore
	}
	return e.persist(ctx)
}

func (e *Engine) persist(ctx context.Context) error {
	var buf bytes.Buffer
	if err := e.SaveModel(&buf); err != nil {
		return err
	}
	if err := e.modelStore.SaveModel(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	e.logger.Debug().Int("bytes", buf.Len()).Msg("model persisted")
	return nil
}

// Restore loads the model from the model store.
// Callers retrain when it returns an error, including a not-found error from the store.
func (e *Engine) Restore(ctx context.Context) error {
	if e.modelStore == nil {
		return ErrNoModelStore
	}
	data, err := e.modelStore.LoadModel(ctx)
	if err != nil {
		return fmt.Errorf("restore model: %w", err)
	}
	return e.LoadModel(bytes.NewReader(data))
}

// GetStatus returns the current training status.
func (e *Engine) GetStatus() TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

// ModelStats summarizes the active snapshot.
type ModelStats struct {
	Version           string    `json:"version"`
	TrainedAt         time.Time `json:"trained_at"`
	Generation        int64     `json:"generation"`
	UserEmbeddings    int       `json:"users"`
	ItemEmbeddings    int       `json:"nfts"`
	SimilarityEntries int       `json:"similarity_entries"`
	OnlineUpdates     int64     `json:"online_updates"`
	Strategies        []string  `json:"strategies"`
}

// Stats returns counts describing the active snapshot.
func (e *Engine) Stats() ModelStats {
	m := e.Snapshot()
	strategies := e.Strategies()
	sort.Strings(strategies)
	return ModelStats{
		Version:           m.Version,
		TrainedAt:         m.TrainedAt,
		Generation:        e.generation.Load(),
		UserEmbeddings:    len(m.Users),
		ItemEmbeddings:    len(m.Items),
		SimilarityEntries: m.Similarity.Len(),
		OnlineUpdates:     e.onlineUpdates.Load(),
		Strategies:        strategies,
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
