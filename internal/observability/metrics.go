package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wgpv"

// Metrics holds the Prometheus counters and histograms for GRIB2 decoding.
type Metrics struct {
	MessagesDecoded prometheus.Counter
	DecodeFailures  prometheus.Counter
	BytesDecoded    prometheus.Counter
	FilesParsed     prometheus.Counter

	SectionsDecoded *prometheus.CounterVec // labels: section={0..8}
	Diagnostics     *prometheus.CounterVec // labels: kind={unknown_code,unknown_template,...}

	MessageDuration prometheus.Histogram
}

// NewMetrics creates and registers all decoder metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_decoded_total",
			Help:      "Total GRIB2 messages decoded through the End Section.",
		}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "Total message decodes aborted by a fatal fault.",
		}),
		BytesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_decoded_total",
			Help:      "Total section bytes consumed.",
		}),
		FilesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_parsed_total",
			Help:      "Total GPV files parsed.",
		}),
		SectionsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sections_decoded_total",
			Help:      "Sections decoded by section number.",
		}, []string{"section"}),
		Diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Recovered decode faults by kind.",
		}, []string{"kind"}),
		MessageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_decode_duration_seconds",
			Help:      "Duration of a complete message decode.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	prometheus.MustRegister(
		m.MessagesDecoded,
		m.DecodeFailures,
		m.BytesDecoded,
		m.FilesParsed,
		m.SectionsDecoded,
		m.Diagnostics,
		m.MessageDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can create as many as they need.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesDecoded: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_decoded_total"}),
		DecodeFailures:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "decode_failures_total"}),
		BytesDecoded:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "bytes_decoded_total"}),
		FilesParsed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "files_parsed_total"}),
		SectionsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "sections_decoded_total"}, []string{"section"}),
		Diagnostics:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "diagnostics_total"}, []string{"kind"}),
		MessageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "message_decode_duration_seconds"}),
	}
}
