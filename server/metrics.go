package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the request counter.
const (
	outcomeOK         = "ok"
	outcomeError      = "error"
	outcomeBadRequest = "bad_request"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatmode_requests_total",
		Help: "Generation requests handled, by outcome.",
	}, []string{"outcome"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatmode_generation_duration_seconds",
		Help:    "Time spent generating and writing an artifact.",
		Buckets: prometheus.DefBuckets,
	})

	configReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatmode_config_reloads_total",
		Help: "Successful configuration hot reloads.",
	})
)
