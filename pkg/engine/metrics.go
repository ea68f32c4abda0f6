package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics is a container of metrics for an engine.
type metrics struct {
	launchesTotal prometheus.Counter
	rowsTotal     prometheus.Counter

	launchSeconds prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		launchesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "cudf_engine_launches_total",
			Help: "Total number of plan evaluations launched",
		}),
		rowsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "cudf_engine_rows_evaluated_total",
			Help: "Total number of rows evaluated across all launches",
		}),

		launchSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "cudf_engine_launch_seconds",
			Help: "Number of seconds a launch took to evaluate all rows",

			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}),
	}
}
