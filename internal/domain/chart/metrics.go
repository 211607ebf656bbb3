package chart

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Evaluations *prometheus.CounterVec
	Scores      prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartsense",
			Subsystem: "chart",
			Name:      "evaluations_total",
			Help:      "Chart completeness evaluations by grade and source (fresh, cached, demo).",
		}, []string{"grade", "source"}),
		Scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chartsense",
			Subsystem: "chart",
			Name:      "total_score",
			Help:      "Distribution of freshly computed chart completeness scores.",
			Buckets:   []float64{40, 60, 75, 90, 100},
		}),
	}
	reg.MustRegister(m.Evaluations, m.Scores)
	return m
}
