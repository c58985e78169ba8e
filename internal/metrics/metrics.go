package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Page render metrics
var (
	PageRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oshikatsu_page_renders_total",
			Help: "Total number of page renders by outcome.",
		},
		[]string{"status"},
	)

	PageRenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oshikatsu_page_render_duration_seconds",
			Help:    "Time spent loading the data source and rendering the page.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// OshiEntries reports the number of cards in the last successful render.
	OshiEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "oshikatsu_oshi_entries",
			Help: "Number of oshi rendered by the last successful page render.",
		},
	)
)

// Data source metrics
var (
	DataSourceReadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oshikatsu_data_source_reads_total",
			Help: "Total number of data source reads by source kind and outcome.",
		},
		[]string{"kind", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		PageRendersTotal,
		PageRenderDuration,
		OshiEntries,
		DataSourceReadsTotal,
	)
}
