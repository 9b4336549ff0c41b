package backend

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts backend requests by endpoint and outcome. A nil *Metrics is
// a no-op, so instrumentation stays optional.
type Metrics struct {
	requestsTotal *prometheus.CounterVec
}

// NewMetrics registers the backend request counter with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nftlend_backend_requests_total",
		Help: "Total number of backend API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	reg.MustRegister(requests)

	return &Metrics{requestsTotal: requests}
}

func (m *Metrics) incRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
