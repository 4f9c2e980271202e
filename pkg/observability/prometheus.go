package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records render events as Prometheus metrics.
type PrometheusHooks struct {
	builds         prometheus.Counter
	buildNodes     prometheus.Histogram
	traces         *prometheus.CounterVec
	exports        *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
}

// NewPrometheusHooks creates hooks and registers their collectors with reg.
// It panics if the collectors are already registered, like MustRegister.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fadiagram_builds_total",
			Help: "Total number of diagram graphs built",
		}),
		buildNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fadiagram_build_nodes",
			Help:    "Number of nodes per built diagram",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
		traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fadiagram_traces_total",
				Help: "Total number of highlighted traces by outcome",
			},
			[]string{"outcome"},
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fadiagram_exports_total",
				Help: "Total number of layout engine exports by format and status",
			},
			[]string{"format", "status"},
		),
		exportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fadiagram_export_duration_seconds",
				Help: "Duration of layout engine exports",
			},
			[]string{"format"},
		),
	}
	reg.MustRegister(h.builds, h.buildNodes, h.traces, h.exports, h.exportDuration)
	return h
}

func (h *PrometheusHooks) OnBuild(_ context.Context, nodes, _ int, _ time.Duration) {
	h.builds.Inc()
	h.buildNodes.Observe(float64(nodes))
}

func (h *PrometheusHooks) OnTrace(_ context.Context, _ int, accepted bool, err error) {
	outcome := "rejected"
	switch {
	case err != nil:
		outcome = "error"
	case accepted:
		outcome = "accepted"
	}
	h.traces.WithLabelValues(outcome).Inc()
}

func (h *PrometheusHooks) OnExport(_ context.Context, format string, _ int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.exports.WithLabelValues(format, status).Inc()
	h.exportDuration.WithLabelValues(format).Observe(d.Seconds())
}
