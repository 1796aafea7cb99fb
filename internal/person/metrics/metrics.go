package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the person module.
type Metrics struct {
	PeopleCreated prometheus.Counter
	PeopleRenamed prometheus.Counter
	CacheLookups  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// New registers the person metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PeopleCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "stargate_people_created_total",
			Help: "Total number of people registered",
		}),
		PeopleRenamed: factory.NewCounter(prometheus.CounterOpts{
			Name: "stargate_people_renamed_total",
			Help: "Total number of people renamed",
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stargate_person_cache_lookups_total",
			Help: "Person projection cache lookups by result",
		}, []string{"result"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stargate_person_query_duration_seconds",
			Help:    "Duration of person projection queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"query"}),
	}
}

func (m *Metrics) IncrementCreated() {
	m.PeopleCreated.Inc()
}

func (m *Metrics) IncrementRenamed() {
	m.PeopleRenamed.Inc()
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveQuery records the duration of a projection query.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveQuery(query string, start time.Time) {
	m.QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}
