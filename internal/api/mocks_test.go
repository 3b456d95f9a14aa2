// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
	"github.com/Soumyadip-03/NFTGenie/internal/database"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

type recommendCall struct {
	userID   string
	items    []recommend.Item
	k        int
	strategy string
}

type mockEngine struct {
	mu        sync.Mutex
	calls     []recommendCall
	results   map[string][]recommend.ScoredItem
	errs      map[string]error
	neighbors []recommend.Neighbor
	model     *recommend.Model
	stats     recommend.ModelStats
	status    recommend.TrainingStatus
	explained []string
}

func newMockEngine() *mockEngine {
	return &mockEngine{
		results: map[string][]recommend.ScoredItem{},
		errs:    map[string]error{},
		model:   &recommend.Model{Version: "1.0.0", Items: map[string]recommend.Embedding{}},
		stats:   recommend.ModelStats{Version: "1.0.0"},
	}
}

func (m *mockEngine) Recommend(_ context.Context, userID string, items []recommend.Item, k int, strategy string) ([]recommend.ScoredItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recommendCall{userID: userID, items: items, k: k, strategy: strategy})
	if err := m.errs[strategy]; err != nil {
		return nil, err
	}
	res := m.results[strategy]
	if len(res) > k {
		res = res[:k]
	}
	return res, nil
}

func (m *mockEngine) Explain(userID, itemID string) recommend.Explanation {
	m.mu.Lock()
	m.explained = append(m.explained, userID)
	m.mu.Unlock()
	return recommend.Explanation{
		UserID:  userID,
		ItemID:  itemID,
		Factors: []recommend.Factor{{Type: "content_similarity", Score: 0.5, Description: "Matches your interest in art"}},
	}
}

func (m *mockEngine) SimilarItems(string, int) []recommend.Neighbor { return m.neighbors }

func (m *mockEngine) DiversityScore(items []recommend.Item) float64 {
	return float64(len(items)) / 10
}

func (m *mockEngine) Stats() recommend.ModelStats        { return m.stats }
func (m *mockEngine) GetStatus() recommend.TrainingStatus { return m.status }
func (m *mockEngine) Snapshot() *recommend.Model          { return m.model }

func (m *mockEngine) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockEngine) lastCall() recommendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

type mockStore struct {
	items      []recommend.Item
	itemsErr   error
	users      map[string]string // ref -> id
	resolveErr error
	owned      map[string]map[string]struct{}
	recordErr  error
	recorded   []recommend.Interaction
	stats      database.InteractionStats
	statsErr   error
	pingErr    error
}

func (s *mockStore) Items(context.Context) ([]recommend.Item, error) {
	return s.items, s.itemsErr
}

func (s *mockStore) ResolveUserID(_ context.Context, ref string) (string, error) {
	if s.resolveErr != nil {
		return "", s.resolveErr
	}
	if id, ok := s.users[ref]; ok {
		return id, nil
	}
	return "", database.ErrUnknownUser
}

func (s *mockStore) OwnedItemIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	return s.owned[userID], nil
}

func (s *mockStore) RecordInteraction(_ context.Context, in recommend.Interaction) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, in)
	return nil
}

func (s *mockStore) InteractionStats(context.Context) (database.InteractionStats, error) {
	return s.stats, s.statsErr
}

func (s *mockStore) Ping(context.Context) error { return s.pingErr }

type mockQueue struct {
	full bool
	got  []recommend.Interaction
}

func (q *mockQueue) Enqueue(in recommend.Interaction) bool {
	if q.full {
		return false
	}
	q.got = append(q.got, in)
	return true
}

type mockTrainer struct {
	busy      bool
	triggered int
}

func (t *mockTrainer) TriggerTraining() bool {
	t.triggered++
	return !t.busy
}

// downMemo is a LocalMemo whose Ping fails.
type downMemo struct {
	*cache.LocalMemo
}

func (downMemo) Ping(context.Context) error { return errors.New("connection refused") }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testItems() []recommend.Item {
	return []recommend.Item{
		{ID: "n1", Name: "Sunset", ImageURL: "ipfs://n1", CreatorID: "c1", Tags: []string{"art"}, Price: 10, Views: 100, Likes: 10},
		{ID: "n2", Name: "Sword", ImageURL: "ipfs://n2", CreatorID: "c2", Tags: []string{"gaming"}, Price: 20, Views: 50, Likes: 5},
		{ID: "n3", Name: "Beat", ImageURL: "ipfs://n3", CreatorID: "c3", Tags: []string{"music"}, Price: 30, Views: 10, Likes: 1},
	}
}

func scored(items []recommend.Item, scores ...float64) []recommend.ScoredItem {
	out := make([]recommend.ScoredItem, len(scores))
	for i, s := range scores {
		out[i] = recommend.ScoredItem{Item: items[i], Score: s, Reason: "Popular in " + items[i].Tags[0]}
	}
	return out
}

type fixture struct {
	engine  *mockEngine
	store   *mockStore
	memo    *cache.LocalMemo
	queue   *mockQueue
	trainer *mockTrainer
	handler *Handler
	router  http.Handler
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		engine: newMockEngine(),
		store: &mockStore{
			items: testItems(),
			users: map[string]string{"0xabc": "u1", "u1": "u1", "u2": "u2"},
			owned: map[string]map[string]struct{}{},
		},
		memo:    cache.NewLocalMemo(0),
		queue:   &mockQueue{},
		trainer: &mockTrainer{},
	}
	base := []Option{
		WithInteractionQueue(f.queue),
		WithTrainTrigger(f.trainer),
		WithClock(func() time.Time { return testNow }),
	}
	f.handler = NewHandler(f.engine, f.store, f.memo, zerolog.Nop(), append(base, opts...)...)
	f.router = NewRouter(f.handler, NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true}), 0)
	return f
}
