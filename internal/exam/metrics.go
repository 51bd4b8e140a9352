package exam

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	verdicts      *prometheus.CounterVec
	malformedKeys *prometheus.CounterVec
}

// NewMetrics registers the checking counters on reg. A nil reg keeps the
// counters unregistered, which tests use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worldtests_verdicts_total",
				Help: "Graded questions by mechanic and verdict",
			},
			[]string{"mechanic", "verdict"},
		),
		malformedKeys: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worldtests_malformed_keys_total",
				Help: "Questions scored incorrect because their definition or answer key could not be trusted",
			},
			[]string{"mechanic"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.verdicts, m.malformedKeys)
	}
	return m
}

func (m *Metrics) observe(res ScoreResult) {
	m.verdicts.WithLabelValues(res.Mechanic, res.Reason).Inc()
	if res.Reason == ReasonMalformedKey || res.Reason == ReasonInvalidQuestion {
		m.malformedKeys.WithLabelValues(res.Mechanic).Inc()
	}
}
