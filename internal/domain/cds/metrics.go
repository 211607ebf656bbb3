package cds

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts decision support outputs.
type Metrics struct {
	PreDiagnoses *prometheus.CounterVec
	Admissions   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PreDiagnoses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartsense",
			Subsystem: "cds",
			Name:      "prediagnoses_total",
			Help:      "Pre-diagnosis requests by primary disease group.",
		}, []string{"group"}),
		Admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartsense",
			Subsystem: "cds",
			Name:      "admission_decisions_total",
			Help:      "Admission decisions by recommendation.",
		}, []string{"recommendation"}),
	}
	reg.MustRegister(m.PreDiagnoses, m.Admissions)
	return m
}
