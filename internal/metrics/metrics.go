// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nftgenie"

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limit_hits_total",
			Help:      "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation serving
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_requests_total",
			Help:      "Recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "result"}, // result: success, error
	)

	RecommendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_latency_seconds",
			Help:      "Time spent scoring candidates",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"strategy"},
	)

	RecommendResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_result_size",
			Help:      "Number of items returned per request",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"strategy"},
	)

	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_fallbacks_total",
			Help:      "Requests answered by the trending fallback after the requested strategy failed",
		},
		[]string{"requested_strategy"},
	)

	// Training
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_runs_total",
			Help:      "Training runs by outcome",
		},
		[]string{"result"}, // success, error, skipped
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Wall time of a training run including data loading",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "training_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful training run",
		},
	)

	ModelEmbeddings = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_embeddings",
			Help:      "Embeddings in the active model",
		},
		[]string{"kind"}, // user, item
	)

	ModelSimilarityEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_similarity_entries",
			Help:      "Entries in the active similarity cache",
		},
	)

	ModelGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_generation",
			Help:      "Generation counter of the active model snapshot",
		},
	)

	// Online updates
	OnlineUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "online_updates_total",
			Help:      "Real-time embedding updates by outcome",
		},
		[]string{"result"}, // applied, unknown_user, dropped
	)

	OnlineQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_update_queue_depth",
			Help:      "Interactions waiting for the online updater",
		},
	)

	// Memo
	MemoHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memo_hits_total",
			Help:      "Memoized responses served",
		},
		[]string{"backend"},
	)

	MemoMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memo_misses_total",
			Help:      "Memo lookups that found nothing",
		},
		[]string{"backend"},
	)

	MemoErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memo_errors_total",
			Help:      "Memo backend errors by operation",
		},
		[]string{"backend", "operation"},
	)

	MemoInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memo_invalidated_keys_total",
			Help:      "Keys removed by pattern invalidation",
		},
		[]string{"backend"},
	)

	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of PostgreSQL queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Total number of PostgreSQL query errors",
		},
		[]string{"operation"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "Requests through the circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state_transitions_total",
			Help:      "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records a finished HTTP request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one strategy invocation.
func RecordRecommendation(strategy string, returned int, duration time.Duration, err error) {
	if err != nil {
		RecommendRequests.WithLabelValues(strategy, "error").Inc()
		return
	}
	RecommendRequests.WithLabelValues(strategy, "success").Inc()
	RecommendLatency.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendResultSize.WithLabelValues(strategy).Observe(float64(returned))
}

// RecordFallback counts a request served by trending instead of requested.
func RecordFallback(requested string) {
	RecommendFallbacks.WithLabelValues(requested).Inc()
}

// RecordTraining records a training run outcome.
func RecordTraining(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRuns.WithLabelValues("error").Inc()
		return
	}
	TrainingRuns.WithLabelValues("success").Inc()
	TrainingLastSuccess.SetToCurrentTime()
}

// RecordTrainingSkipped counts a throttled training request.
func RecordTrainingSkipped() {
	TrainingRuns.WithLabelValues("skipped").Inc()
}

// SetModelStats publishes the shape of the active model.
func SetModelStats(users, items, similarities int, generation int64) {
	ModelEmbeddings.WithLabelValues("user").Set(float64(users))
	ModelEmbeddings.WithLabelValues("item").Set(float64(items))
	ModelSimilarityEntries.Set(float64(similarities))
	ModelGeneration.Set(float64(generation))
}

// RecordOnlineUpdate records the outcome of one queued interaction.
// result is one of "applied", "unknown_user" or "dropped".
func RecordOnlineUpdate(result string) {
	OnlineUpdates.WithLabelValues(result).Inc()
}

// RecordMemoLookup records a memo Get.
func RecordMemoLookup(backend string, hit bool) {
	if hit {
		MemoHits.WithLabelValues(backend).Inc()
	} else {
		MemoMisses.WithLabelValues(backend).Inc()
	}
}

// RecordMemoError records a failed memo operation.
func RecordMemoError(backend, operation string) {
	MemoErrors.WithLabelValues(backend, operation).Inc()
}

// RecordMemoInvalidation records keys removed by a pattern delete.
func RecordMemoInvalidation(backend string, keys int) {
	MemoInvalidations.WithLabelValues(backend).Add(float64(keys))
}

// RecordDBQuery records a query and its error, if any.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}
