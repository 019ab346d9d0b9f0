package preview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the preview server's collectors.
type Metrics struct {
	Registry     *prometheus.Registry
	RendersTotal *prometheus.CounterVec
	TagsEmitted  *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		RendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "headmeta_renders_total",
				Help: "Number of page head renders by format and outcome.",
			},
			[]string{"format", "outcome"},
		),
		TagsEmitted: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "headmeta_tags_emitted",
				Help:    "Number of head tags emitted per render.",
				Buckets: prometheus.LinearBuckets(0, 5, 10),
			},
			[]string{"format"},
		),
	}
}
