package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pquest_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pquest_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	SessionsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pquest_sessions_recorded_total",
			Help: "Practice sessions committed",
		},
	)

	XPAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pquest_xp_awarded_total",
			Help: "XP granted, by origin (session or badge)",
		},
		[]string{"origin"},
	)

	BadgesAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pquest_badges_awarded_total",
			Help: "Badges awarded, by badge key",
		},
		[]string{"badge_key"},
	)

	GemsMoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pquest_gems_moved_total",
			Help: "Absolute gem amount written to the ledger, by transaction type",
		},
		[]string{"type"},
	)

	ShieldsConsumed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pquest_streak_shields_consumed_total",
			Help: "Streak shields consumed to bridge a missed day",
		},
	)

	ConcurrencyRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pquest_concurrency_retries_total",
			Help: "Transactions retried after a lock or serialization conflict",
		},
		[]string{"operation"},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			SessionsRecorded,
			XPAwarded,
			BadgesAwarded,
			GemsMoved,
			ShieldsConsumed,
			ConcurrencyRetries,
		)
	})
}
