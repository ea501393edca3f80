package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "feedback", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "feedback", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// Submissions counts submit attempts by outcome: created, invalid, storage_error.
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "feedback", Name: "submissions_total", Help: "Feedback submissions by outcome."},
		[]string{"outcome"},
	)
	// Listings counts list calls by outcome: ok, storage_error.
	Listings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "feedback", Name: "listings_total", Help: "Feedback list calls by outcome."},
		[]string{"outcome"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "feedback", Name: "list_cache_lookups_total", Help: "List cache lookups by result (hit|miss)."},
		[]string{"result"},
	)
	StoreConnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "feedback", Name: "store_connect_attempts_total", Help: "Document store connection attempts by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(Submissions)
	reg.MustRegister(Listings)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(StoreConnects)
}
