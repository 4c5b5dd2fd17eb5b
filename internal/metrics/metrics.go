package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolutions counts search resolutions by terminal outcome
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cineslime",
		Name:      "resolutions_total",
		Help:      "Search resolutions by outcome.",
	}, []string{"outcome"})

	// Ingestions counts ingestion attempts by outcome
	Ingestions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cineslime",
		Name:      "ingestions_total",
		Help:      "File ingestions by outcome.",
	}, []string{"outcome"})

	// CatalogRequests counts TMDB calls by operation and result
	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cineslime",
		Name:      "catalog_requests_total",
		Help:      "TMDB requests by operation and result.",
	}, []string{"operation", "result"})

	// MirrorAttempts counts YTS mirror attempts by mirror and result
	MirrorAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cineslime",
		Name:      "mirror_attempts_total",
		Help:      "YTS mirror attempts by mirror and result.",
	}, []string{"mirror", "result"})

	// ArchiveRecords is the number of archived files by media type
	ArchiveRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cineslime",
		Name:      "archive_records",
		Help:      "Archived files by media type.",
	}, []string{"type"})

	// Users is the number of known bot users
	Users = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cineslime",
		Name:      "users",
		Help:      "Known bot users.",
	})

	// RateLimited counts updates dropped by the rate limiter
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cineslime",
		Name:      "rate_limited_total",
		Help:      "Updates dropped by the per-user rate limiter.",
	})
)
