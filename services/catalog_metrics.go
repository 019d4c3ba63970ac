package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var catalogCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "storefront_catalog_request_duration_seconds",
		Help:    "Duration of catalog API calls in seconds",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	},
	[]string{"op", "status"},
)

func observeCatalogCall(op string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	catalogCallDuration.WithLabelValues(op, label).Observe(elapsed.Seconds())
}
