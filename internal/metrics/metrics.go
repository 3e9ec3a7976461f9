// Package metrics exports prometheus collectors describing the downloads
// handled by Siphon. Collectors are registered against a private registry,
// rather than the global default, so that multiple instances can coexist.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const outcomeValidation = "validation"

// Collector implements download.Recorder on top of the prometheus client.
type Collector struct {
	registry *prometheus.Registry

	downloadsTotal  *prometheus.CounterVec
	durationSeconds prometheus.Histogram
	fileSizeBytes   prometheus.Histogram
	inProgress      prometheus.Gauge
}

// New constructs a Collector, prefixing every metric name with
// the namespace provided (e.g. "siphon").
func New(namespace string) *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.downloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Download requests handled, by outcome",
		},
		[]string{"outcome"},
	)

	c.durationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_duration_seconds",
			Help:      "Time spent fetching media, from job allocation until the file was served",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	c.fileSizeBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_file_size_bytes",
			Help:      "Size of successfully downloaded files",
			Buckets: []float64{
				1024,       // 1KB
				10240,      // 10KB
				102400,     // 100KB
				1048576,    // 1MB
				10485760,   // 10MB
				104857600,  // 100MB
				1073741824, // 1GB
			},
		},
	)

	c.inProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "downloads_in_progress",
			Help:      "Downloads currently in flight",
		},
	)

	c.registry.MustRegister(
		c.downloadsTotal,
		c.durationSeconds,
		c.fileSizeBytes,
		c.inProgress,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

func (c *Collector) JobStarted() {
	c.inProgress.Inc()
}

func (c *Collector) JobFinished(outcome string, elapsed time.Duration, sizeBytes int64) {
	c.inProgress.Dec()
	c.downloadsTotal.WithLabelValues(outcome).Inc()
	c.durationSeconds.Observe(elapsed.Seconds())
	if sizeBytes > 0 {
		c.fileSizeBytes.Observe(float64(sizeBytes))
	}
}

func (c *Collector) JobRejected() {
	c.downloadsTotal.WithLabelValues(outcomeValidation).Inc()
}

// Handler returns an HTTP handler exposing the collected
// metrics in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
