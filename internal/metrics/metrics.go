package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendations counts served recommendations by selection strategy.
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmeal_recommendations_total",
			Help: "Total number of recommendations served",
		},
		[]string{"strategy"},
	)

	// RecommendationFailures counts recommendations that could not be produced.
	RecommendationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodmeal_recommendation_failures_total",
			Help: "Total number of failed recommendation requests",
		},
	)

	MatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moodmeal_match_score",
			Help:    "Match score of served recommendations",
			Buckets: prometheus.LinearBuckets(0, 4, 8), // 0..28
		},
	)

	CartItemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmeal_cart_items_added_total",
			Help: "Total number of items added to carts",
		},
		[]string{"category"},
	)

	CartItemsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodmeal_cart_items_removed_total",
			Help: "Total number of items removed from carts",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodmeal_cart_sessions",
			Help: "Current number of live cart sessions",
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodmeal_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordRecommendation records a served recommendation.
func RecordRecommendation(strategy string, score int) {
	Recommendations.WithLabelValues(strategy).Inc()
	MatchScore.Observe(float64(score))
}

// RecordAPIRequest records the latency of one API request.
func RecordAPIRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
