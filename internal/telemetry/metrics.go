package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts engine operations by outcome so lender-facing dashboards
// can distinguish business rejections from transient storage faults.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Decisions   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finance_submissions_total",
			Help: "Finance request submissions by outcome.",
		}, []string{"outcome"}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finance_decisions_total",
			Help: "Finance request decisions by outcome.",
		}, []string{"outcome"}),
	}
}
