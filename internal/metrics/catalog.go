// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qvdata_catalog_scans_total",
		Help: "Catalog scans by final status",
	}, []string{"status"}) // status=ok|degraded|failed

	catalogDatasets = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "qvdata_catalog_datasets",
		Help: "Dataset files indexed in the last catalog scan by status",
	}, []string{"status"}) // status=ok|invalid

	catalogScanDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qvdata_catalog_scan_duration_seconds",
		Help:    "Time spent scanning the dataset root",
		Buckets: prometheus.DefBuckets,
	})
)

// RecordCatalogScan records the result of a catalog scan.
func RecordCatalogScan(status string, ok, invalid int, seconds float64) {
	catalogScansTotal.WithLabelValues(status).Inc()
	catalogDatasets.WithLabelValues("ok").Set(float64(ok))
	catalogDatasets.WithLabelValues("invalid").Set(float64(invalid))
	catalogScanDurationSeconds.Observe(seconds)
}
