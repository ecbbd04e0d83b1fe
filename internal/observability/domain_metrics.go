package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	responsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlchat_responses_total",
			Help: "Total number of generated responses by query type.",
		},
		[]string{"query_type"},
	)
	translatorFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlchat_translator_fallbacks_total",
			Help: "Total number of questions answered by the fallback SQL generator.",
		},
	)
	queryDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sqlchat_query_duration_seconds",
			Help:    "SQL execution latency by backend and outcome.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "outcome"},
	)
	userLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlchat_user_lookups_total",
			Help: "Total number of user detail lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		responsesTotal,
		translatorFallbacksTotal,
		queryDurationSeconds,
		userLookupsTotal,
	)
}

func ObserveResponse(queryType string) {
	responsesTotal.WithLabelValues(queryType).Inc()
}

func IncrementTranslatorFallback() {
	translatorFallbacksTotal.Inc()
}

func ObserveQuery(backend string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	queryDurationSeconds.WithLabelValues(backend, outcome).Observe(elapsed.Seconds())
}

func ObserveUserLookup(outcome string) {
	userLookupsTotal.WithLabelValues(outcome).Inc()
}
