package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics holds Prometheus metrics for the rule engine.
type EngineMetrics struct {
	EvaluationsTotal   *prometheus.CounterVec
	TaxesAssessed      *prometheus.CounterVec
	RuleFailures       *prometheus.CounterVec
	GroupReuse         prometheus.Counter
	AYSkips            prometheus.Counter
	ConversionFallback *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
}

// NewEngineMetrics creates and registers the engine metrics with the given
// registerer. Pass prometheus.DefaultRegisterer in production.
func NewEngineMetrics(namespace string, reg prometheus.Registerer) *EngineMetrics {
	if namespace == "" {
		namespace = "aerotax"
	}
	factory := promauto.With(reg)

	return &EngineMetrics{
		EvaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of request evaluations",
			},
			[]string{"status"},
		),
		TaxesAssessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "taxes_assessed_total",
				Help:      "Taxes assessed, by tax code",
			},
			[]string{"tax_code"},
		),
		RuleFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_failures_total",
				Help:      "Itinerary-subject rule failures, by rule name",
			},
			[]string{"rule"},
		),
		GroupReuse: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "group_reuse_total",
				Help:      "Itineraries resolved by equivalence-class reuse instead of full evaluation",
			},
		),
		AYSkips: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ay_prevalidation_skips_total",
				Help:      "AY records skipped by prevalidation",
			},
		),
		ConversionFallback: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "currency_fallbacks_total",
				Help:      "Flat amounts emitted unconverted after a failed currency conversion",
			},
			[]string{"tax_code"},
		),
		EvaluationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Request evaluation duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
	}
}
