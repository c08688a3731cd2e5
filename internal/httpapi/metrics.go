// SPDX-License-Identifier: AGPL-3.0-or-later
package httpapi

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/timeline"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the Prometheus collectors for evaluation traffic.
type Metrics struct {
	EvaluationsTotal     *prometheus.CounterVec
	EvaluationScore      prometheus.Histogram
	ReconciliationsTotal prometheus.Counter
	ReleasesExtended     prometheus.Counter
	ReleasesAutoComplete prometheus.Counter
}

// NewMetrics registers the collectors once per process.
//
// Metrics:
//   - productlabs_evaluations_total{overall}
//   - productlabs_evaluation_score
//   - productlabs_reconciliations_total
//   - productlabs_releases_extended_total
//   - productlabs_releases_auto_completed_total
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			EvaluationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "productlabs_evaluations_total",
					Help: "Total number of product status evaluations",
				},
				[]string{"overall"},
			),
			EvaluationScore: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "productlabs_evaluation_score",
					Help:    "Distribution of overall health scores",
					Buckets: []float64{30, 45, 60, 65, 80, 90, 100},
				},
			),
			ReconciliationsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "productlabs_reconciliations_total",
					Help: "Total number of release timeline reconciliations",
				},
			),
			ReleasesExtended: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "productlabs_releases_extended_total",
					Help: "Late releases given an extended end date",
				},
			),
			ReleasesAutoComplete: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "productlabs_releases_auto_completed_total",
					Help: "Late releases closed because all of their work was finished",
				},
			),
		}
	})
	return globalMetrics
}

// ObserveReport records one evaluation.
func (m *Metrics) ObserveReport(r health.StatusReport) {
	m.EvaluationsTotal.WithLabelValues(r.Overall.String()).Inc()
	m.EvaluationScore.Observe(float64(r.Score))
}

// ObserveReconcile records one reconciliation.
func (m *Metrics) ObserveReconcile(r timeline.Result) {
	m.ReconciliationsTotal.Inc()
	m.ReleasesExtended.Add(float64(r.Extended))
	m.ReleasesAutoComplete.Add(float64(r.AutoCompleted))
}
