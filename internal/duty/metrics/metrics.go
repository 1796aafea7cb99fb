package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks duty reconciliation outcomes and latency.
type Metrics struct {
	DutiesRecorded         *prometheus.CounterVec
	ReconciliationFailures *prometheus.CounterVec
	ReconciliationDuration prometheus.Histogram
}

// New registers the duty metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DutiesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stargate_duties_recorded_total",
			Help: "Total astronaut duties recorded by kind",
		}, []string{"kind"}),
		ReconciliationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stargate_duty_reconciliation_failures_total",
			Help: "Rejected or failed duty recordings by error code",
		}, []string{"code"}),
		ReconciliationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "stargate_duty_reconciliation_duration_seconds",
			Help:    "Duration of duty reconciliation including the transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementRecorded(kind string) {
	m.DutiesRecorded.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementFailure(code string) {
	m.ReconciliationFailures.WithLabelValues(code).Inc()
}

// ObserveReconciliation records the duration of a RecordDuty call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveReconciliation(start time.Time) {
	m.ReconciliationDuration.Observe(time.Since(start).Seconds())
}
