package coding

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Suggestions *prometheus.CounterVec
	Decisions   *prometheus.CounterVec
	Revenue     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartsense",
			Subsystem: "coding",
			Name:      "suggestions_total",
			Help:      "ICD codes suggested, by code.",
		}, []string{"icd_code"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartsense",
			Subsystem: "coding",
			Name:      "decisions_total",
			Help:      "Suggestions accepted or rejected by coders.",
		}, []string{"status"}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chartsense",
			Subsystem: "coding",
			Name:      "accepted_revenue_thb_total",
			Help:      "Revenue impact in THB of accepted codes.",
		}),
	}
	reg.MustRegister(m.Suggestions, m.Decisions, m.Revenue)
	return m
}
