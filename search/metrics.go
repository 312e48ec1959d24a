package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records search activity. A nil *Metrics records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
	searches *prometheus.CounterVec
}

// NewMetrics creates the search collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bosy_search_attempts_total",
				Help: "Solve attempts by strategy and result (sat, unsat, error).",
			},
			[]string{"strategy", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bosy_search_solve_duration_seconds",
				Help:    "Duration of individual solve attempts.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"strategy"},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bosy_searches_total",
				Help: "Completed searches by strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		),
	}
	for _, c := range []prometheus.Collector{m.attempts, m.duration, m.searches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeAttempt(strategy string, ok bool, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "unsat"
	switch {
	case err != nil:
		result = "error"
	case ok:
		result = "sat"
	}
	m.attempts.WithLabelValues(strategy, result).Inc()
	m.duration.WithLabelValues(strategy).Observe(d.Seconds())
}

func (m *Metrics) observeSearch(strategy string, outcome Outcome) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(strategy, outcome.String()).Inc()
}
