// Package metrics exposes Prometheus metrics for generation outcomes
// and provider latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes
const (
	OutcomeOK            = "ok"
	OutcomeRepaired      = "repaired"
	OutcomeFailed        = "failed"
	OutcomeProviderError = "provider_error"
)

// Provider call stages
const (
	StagePrimary = "primary"
	StageRepair  = "repair"
)

const namespace = "mealmind"

// Metrics holds the collectors registered for one process
type Metrics struct {
	generations  *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	summaries    *prometheus.CounterVec
}

// New registers the collectors with reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_total",
				Help:      "Total number of structured generations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		callDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Duration of language model provider calls",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
			},
			[]string{"kind", "stage"},
		),
		summaries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "preference_summaries_total",
				Help:      "Total number of preference summary runs by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Nop returns metrics registered with a private registry, for callers that never scrape.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) RecordGeneration(kind, outcome string) {
	m.generations.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveProviderCall(kind, stage string, d time.Duration) {
	m.callDuration.WithLabelValues(kind, stage).Observe(d.Seconds())
}

func (m *Metrics) RecordSummary(outcome string) {
	m.summaries.WithLabelValues(outcome).Inc()
}
