package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records outcomes of cart mutation operations.
type CartMetrics struct {
	operations *prometheus.CounterVec
	oracle     *prometheus.HistogramVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutation operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	oracle := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oracle_request_duration_seconds",
		Help:    "Duration of stock/catalog oracle queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"oracle", "outcome"})
	reg.MustRegister(operations, oracle)
	return &CartMetrics{
		operations: operations,
		oracle:     oracle,
	}
}

// IncOperation increments the counter for the named operation/outcome pair.
func (c *CartMetrics) IncOperation(operation, outcome string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// ObserveOracle records the duration of a single oracle query.
func (c *CartMetrics) ObserveOracle(oracle, outcome string, duration time.Duration) {
	if c == nil || c.oracle == nil {
		return
	}
	c.oracle.WithLabelValues(normalizeLabel(oracle), normalizeLabel(outcome)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
