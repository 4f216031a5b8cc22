package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Codec outcomes used as metric labels.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thaiqr",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "thaiqr",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	decodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thaiqr",
			Subsystem: "codec",
			Name:      "decodes_total",
			Help:      "Payload decodes by source and outcome.",
		},
		[]string{"source", "outcome"},
	)
	decodedFields = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "thaiqr",
			Subsystem: "codec",
			Name:      "decoded_fields",
			Help:      "Top level fields per decoded payload.",
			Buckets:   []float64{1, 2, 4, 8, 12, 16, 24, 32},
		},
	)
	checksumMismatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "thaiqr",
			Subsystem: "codec",
			Name:      "checksum_mismatches_total",
			Help:      "Decoded payloads whose CRC trailer is missing or wrong.",
		},
	)
	generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thaiqr",
			Subsystem: "codec",
			Name:      "generations_total",
			Help:      "Payload generations by outcome.",
		},
		[]string{"outcome"},
	)
	renderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "thaiqr",
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "QR image render duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			decodes, decodedFields, checksumMismatches,
			generations, renderDuration,
		)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordDecode counts one decode. fields is ignored unless outcome is ok.
func RecordDecode(source, outcome string, fields int, checksumOK bool) {
	RegisterMetrics()
	decodes.WithLabelValues(source, outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	decodedFields.Observe(float64(fields))
	if !checksumOK {
		checksumMismatches.Inc()
	}
}

func RecordGeneration(outcome string) {
	RegisterMetrics()
	generations.WithLabelValues(outcome).Inc()
}

func RecordRender(duration time.Duration) {
	RegisterMetrics()
	renderDuration.Observe(duration.Seconds())
}
