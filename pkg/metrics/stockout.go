package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StockOutMetrics counts stock-out attempts by outcome.
type StockOutMetrics struct {
	attempts *prometheus.CounterVec
}

// NewStockOutMetrics registers the stock-out counters on the provided registerer.
func NewStockOutMetrics(reg prometheus.Registerer) *StockOutMetrics {
	if reg == nil {
		return &StockOutMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockout_attempts_total",
		Help: "Stock-out attempts partitioned by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(attempts)
	return &StockOutMetrics{attempts: attempts}
}

// Outcome labels for stock-out attempts.
const (
	OutcomeRecorded          = "recorded"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeNotFound          = "not_found"
	OutcomeError             = "error"
)

// ObserveAttempt increments the counter for one stock-out attempt.
func (s *StockOutMetrics) ObserveAttempt(outcome string) {
	if s == nil || s.attempts == nil {
		return
	}
	s.attempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}
