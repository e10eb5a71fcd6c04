package utilityapi

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts requests per operation and status code and records their
// latency.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "utilityapi",
			Name:      "requests_total",
			Help:      "Requests sent to the UtilityAPI by operation and status code.",
		}, []string{"operation", "code"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "utilityapi",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of UtilityAPI requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	if reg != nil {
		for _, collector := range []prometheus.Collector{m.Requests, m.Latency} {
			if err := reg.Register(collector); err != nil {
				return nil, fmt.Errorf("register utilityapi metrics: %w", err)
			}
		}
	}

	return m, nil
}

func (m *Metrics) observe(operation string, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(operation, code).Inc()
	m.Latency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
