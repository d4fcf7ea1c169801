package stats

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "md5stream"

var (
	Gather = prometheus.NewRegistry()

	DigestBytesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "digest",
			Name:      "bytes_total",
			Help:      "Bytes read from sources and fed to the hasher.",
		})

	DigestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "digest",
			Name:      "sources_total",
			Help:      "Counter of hashed sources by outcome.",
		}, []string{"result"})

	DigestReadHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "digest",
			Name:      "source_seconds",
			Help:      "Time spent reading and hashing one source.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 24),
		})
)

func init() {
	Gather.MustRegister(DigestBytesCounter)
	Gather.MustRegister(DigestCounter)
	Gather.MustRegister(DigestReadHistogram)
	Gather.MustRegister(collectors.NewGoCollector())
	Gather.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// MetricsHandler serves the Gather registry in the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Gather, promhttp.HandlerOpts{})
}
