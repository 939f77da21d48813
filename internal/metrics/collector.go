package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector aggregates the module's prometheus metrics: backend load
// lifecycle outcomes and per-model count traffic.
type Collector struct {
	loadsTotal    *prometheus.CounterVec
	loadDuration  *prometheus.HistogramVec
	countsTotal   *prometheus.CounterVec
	countDuration *prometheus.HistogramVec

	logger *zap.Logger
}

// NewCollector creates a collector registering its metrics under the
// given namespace on the default prometheus registerer.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_loads_total",
			Help:      "Total number of backend load completions by outcome",
		},
		[]string{"model", "outcome"},
	)

	c.loadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_load_duration_seconds",
			Help:      "Backend vocabulary acquisition duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	c.countsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "count_requests_total",
			Help:      "Total number of token count requests by source",
		},
		[]string{"model", "source"},
	)

	c.countDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "count_duration_seconds",
			Help:      "Token count duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		},
		[]string{"model"},
	)

	return c
}

// ObserveLoad records one backend load completion.
func (c *Collector) ObserveLoad(model, outcome string, d time.Duration) {
	c.loadsTotal.WithLabelValues(model, outcome).Inc()
	c.loadDuration.WithLabelValues(model).Observe(d.Seconds())
}

// ObserveCount records one count request. Source is "exact" when a ready
// backend served it and "estimate" when the heuristic did.
func (c *Collector) ObserveCount(model string, exact bool, d time.Duration) {
	source := "estimate"
	if exact {
		source = "exact"
	}
	c.countsTotal.WithLabelValues(model, source).Inc()
	c.countDuration.WithLabelValues(model).Observe(d.Seconds())
}
