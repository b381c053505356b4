// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package metrics holds the Prometheus collectors for dataset loading and
// catalog maintenance.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes used as the "outcome" label value.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeSchema   = "schema"
	OutcomeCorrupt  = "corrupt"
)

var (
	filesLoadedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qvdata_files_loaded_total",
		Help: "Dataset file load attempts by outcome",
	}, []string{"outcome"}) // outcome=ok|not_found|schema|corrupt

	recordsLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qvdata_records_loaded_total",
		Help: "Total number of circuit records loaded from dataset files",
	})

	shotsLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qvdata_shots_loaded_total",
		Help: "Total number of measured shots loaded from dataset files",
	})

	loadDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qvdata_load_duration_seconds",
		Help:    "Time spent reading and parsing a single dataset file",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordLoad records a successful file load.
func RecordLoad(records, shots int, seconds float64) {
	filesLoadedTotal.WithLabelValues(OutcomeOK).Inc()
	recordsLoadedTotal.Add(float64(records))
	shotsLoadedTotal.Add(float64(shots))
	loadDurationSeconds.Observe(seconds)
}

// IncLoadFailure records a failed file load with the given outcome label.
func IncLoadFailure(outcome string) { filesLoadedTotal.WithLabelValues(outcome).Inc() }
