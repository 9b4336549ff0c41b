package pool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pool transactions by contract method and outcome. A nil
// *Metrics is a no-op.
type Metrics struct {
	transactionsTotal *prometheus.CounterVec
}

// NewMetrics registers the pool transaction counter with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	transactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nftlend_pool_transactions_total",
		Help: "Total number of pool contract transactions by method and outcome",
	}, []string{"method", "outcome"})

	reg.MustRegister(transactions)

	return &Metrics{transactionsTotal: transactions}
}

func (m *Metrics) incTransaction(method, outcome string) {
	if m == nil {
		return
	}
	m.transactionsTotal.WithLabelValues(method, outcome).Inc()
}
