// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Soumyadip-03/NFTGenie/internal/cache"
	"github.com/Soumyadip-03/NFTGenie/internal/metrics"
	"github.com/Soumyadip-03/NFTGenie/internal/recommend"
)

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	return doRequest(f.router, method, path, body)
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestRecommend_DefaultsAndResponseShape(t *testing.T) {
	f := newFixture()
	f.engine.results["hybrid"] = scored(testItems(), 0.9, 0.8, 0.7)

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"0xabc","diversify":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	call := f.engine.lastCall()
	if call.userID != "u1" || call.strategy != "hybrid" || call.k != 10 {
		t.Errorf("engine called with %+v, want resolved user u1, hybrid, k=10", call)
	}

	got := decode[[]RecommendationResponse](t, rec)
	if len(got) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(got))
	}
	first := got[0]
	if first.NFTID != "n1" || first.Creator != "c1" || first.Score != 0.9 || first.Price != 10 || first.Reason == "" {
		t.Errorf("first = %+v", first)
	}
	if len(first.Tags) != 1 || first.Tags[0] != "art" {
		t.Errorf("tags = %v", first.Tags)
	}

	if _, err := f.memo.Get(context.Background(), cache.RecommendationKey("u1", "hybrid", 10)); err != nil {
		t.Errorf("response not memoized: %v", err)
	}
}

func TestRecommend_MemoHitSkipsEngine(t *testing.T) {
	f := newFixture()
	key := cache.RecommendationKey("u1", "content", 5)
	cached := `[{"nft_id":"cached"}]`
	if err := f.memo.Set(context.Background(), key, []byte(cached), 0); err != nil {
		t.Fatal(err)
	}

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"u1","limit":5,"strategy":"content","diversify":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != cached {
		t.Errorf("body = %s, want memoized payload", rec.Body.String())
	}
	if n := f.engine.callCount(); n != 0 {
		t.Errorf("engine called %d times on memo hit", n)
	}
}

func TestRecommend_DiversifyBypassesMemo(t *testing.T) {
	f := newFixture()
	key := cache.RecommendationKey("u1", "hybrid", 10)
	if err := f.memo.Set(context.Background(), key, []byte(`[]`), 0); err != nil {
		t.Fatal(err)
	}
	f.engine.results["hybrid"] = scored(testItems(), 0.9)

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if f.engine.callCount() != 1 {
		t.Errorf("engine calls = %d, want 1", f.engine.callCount())
	}
	if got := decode[[]RecommendationResponse](t, rec); len(got) != 1 {
		t.Errorf("got %d recommendations, want 1", len(got))
	}
}

func TestRecommend_ExcludeOwned(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantItems int
	}{
		{"excluded by default", `{"user_id":"u1"}`, 2},
		{"kept when disabled", `{"user_id":"u1","exclude_owned":false}`, 3},
		{"unknown user has nothing owned", `{"user_id":"0xnew"}`, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.owned["u1"] = map[string]struct{}{"n1": {}}

			rec := f.do(http.MethodPost, "/recommend", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			call := f.engine.lastCall()
			if len(call.items) != tt.wantItems {
				t.Errorf("engine saw %d items, want %d", len(call.items), tt.wantItems)
			}
			for _, it := range call.items {
				if tt.wantItems == 2 && it.ID == "n1" {
					t.Error("owned item n1 was not excluded")
				}
			}
		})
	}
}

func TestRecommend_UnknownUserIsColdStart(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"0xnew"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := f.engine.lastCall().userID; got != "0xnew" {
		t.Errorf("engine user = %q, want raw reference", got)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestRecommend_FallsBackToTrending(t *testing.T) {
	f := newFixture()
	f.engine.errs["collaborative"] = errors.New("boom")
	f.engine.results["trending"] = scored(testItems(), 3, 2)

	fallbacks := metrics.RecommendFallbacks.WithLabelValues("collaborative")
	before := testutil.ToFloat64(fallbacks)

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"u1","strategy":"collaborative","diversify":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[[]RecommendationResponse](t, rec); len(got) != 2 || got[0].NFTID != "n1" {
		t.Errorf("got %+v, want trending results", got)
	}
	if f.engine.lastCall().strategy != "trending" {
		t.Errorf("last strategy = %q", f.engine.lastCall().strategy)
	}
	if d := testutil.ToFloat64(fallbacks) - before; d != 1 {
		t.Errorf("fallback counter delta = %v, want 1", d)
	}
}

func TestRecommend_BothStrategiesFail(t *testing.T) {
	f := newFixture()
	f.engine.errs["hybrid"] = errors.New("boom")
	f.engine.errs["trending"] = errors.New("boom")

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"u1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); got.Status != "error" || got.Error.Code != codeRecommendFailed {
		t.Errorf("error = %+v", got)
	}
}

func TestRecommend_CatalogUnavailable(t *testing.T) {
	f := newFixture()
	f.store.itemsErr = errors.New("connection reset")

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"u1"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRecommend_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"missing user", `{}`, http.StatusUnprocessableEntity, "user_id"},
		{"blank user", `{"user_id":"   "}`, http.StatusUnprocessableEntity, "user_id"},
		{"limit zero", `{"user_id":"u1","limit":0}`, http.StatusUnprocessableEntity, "limit"},
		{"limit too high", `{"user_id":"u1","limit":101}`, http.StatusUnprocessableEntity, "limit"},
		{"unknown strategy", `{"user_id":"u1","strategy":"random"}`, http.StatusUnprocessableEntity, "strategy"},
		{"malformed json", `{"user_id":`, http.StatusBadRequest, ""},
		{"empty body", ``, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			rec := f.do(http.MethodPost, "/recommend", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if f.engine.callCount() != 0 {
				t.Error("engine called for invalid request")
			}
			if tt.wantField == "" {
				return
			}
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Details []struct {
						Field string `json:"field"`
					} `json:"details"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q", body.Error.Code)
			}
			if len(body.Error.Details) == 0 || body.Error.Details[0].Field != tt.wantField {
				t.Errorf("details = %+v, want field %q", body.Error.Details, tt.wantField)
			}
		})
	}
}

func TestRecommend_MMRRerank(t *testing.T) {
	settings := DefaultSettings()
	settings.DiversityLambda = 0.5
	f := newFixture(WithSettings(settings))

	art1 := recommend.Item{ID: "a1", Tags: []string{"art"}}
	art2 := recommend.Item{ID: "a2", Tags: []string{"art"}}
	game := recommend.Item{ID: "g1", Tags: []string{"gaming"}}
	f.engine.results["hybrid"] = []recommend.ScoredItem{
		{Item: art1, Score: 0.9},
		{Item: art2, Score: 0.85},
		{Item: game, Score: 0.8},
	}

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"u1","limit":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if k := f.engine.lastCall().k; k != 2*mmrCandidateFactor {
		t.Errorf("candidate k = %d, want %d", k, 2*mmrCandidateFactor)
	}

	got := decode[[]RecommendationResponse](t, rec)
	if len(got) != 2 || got[0].NFTID != "a1" || got[1].NFTID != "g1" {
		t.Errorf("got %+v, want [a1 g1]", got)
	}
}

func TestRecommend_NoMMRWithoutDiversify(t *testing.T) {
	settings := DefaultSettings()
	settings.DiversityLambda = 0.5
	f := newFixture(WithSettings(settings))
	f.engine.results["hybrid"] = scored(testItems(), 0.9, 0.8, 0.7)

	rec := f.do(http.MethodPost, "/recommend", `{"user_id":"u1","limit":2,"diversify":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if k := f.engine.lastCall().k; k != 2 {
		t.Errorf("k = %d, want 2", k)
	}
}

func TestTrending(t *testing.T) {
	f := newFixture()
	f.engine.results["trending"] = scored(testItems(), 5, 4, 3)

	rec := f.do(http.MethodGet, "/trending?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if call := f.engine.lastCall(); call.userID != "" || call.k != 2 {
		t.Errorf("engine call = %+v", call)
	}
	got := decode[[]TrendingResponse](t, rec)
	if len(got) != 2 {
		t.Fatalf("got %d, want 2", len(got))
	}
	if got[0].TrendScore != 5 || got[0].Views != 100 || got[0].Likes != 10 || got[0].Price != 10 {
		t.Errorf("first = %+v", got[0])
	}
}

func TestTrending_InvalidLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"?limit=abc", http.StatusBadRequest},
		{"?limit=0", http.StatusUnprocessableEntity},
		{"?limit=500", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f := newFixture()
			if rec := f.do(http.MethodGet, "/trending"+tt.query, ""); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
