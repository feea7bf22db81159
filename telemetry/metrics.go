package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lvdistrict"

// ChainMetrics are the Prometheus collectors of a Markov chain run.
// A nil *ChainMetrics is valid and records nothing.
type ChainMetrics struct {
	Steps            *prometheus.CounterVec
	Step             prometheus.Gauge
	Compactness      prometheus.Gauge
	ProposalDuration prometheus.Histogram
	InitialDuration  prometheus.Histogram
}

// NewChainMetrics creates the chain collectors and registers them with reg.
func NewChainMetrics(reg prometheus.Registerer) (*ChainMetrics, error) {
	m := &ChainMetrics{
		Steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "steps_total",
			Help:      "Chain steps by outcome (accepted, rejected, no_split).",
		}, []string{"outcome"}),
		Step: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "step",
			Help:      "Index of the last completed chain step.",
		}),
		Compactness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "compactness",
			Help:      "Mean Polsby-Popper score of the current plan.",
		}),
		ProposalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "proposal_duration_seconds",
			Help:      "Wall time of one ReCom proposal.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		InitialDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "initial_partition_duration_seconds",
			Help:      "Wall time of building the initial plan.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.Steps, m.Step, m.Compactness, m.ProposalDuration, m.InitialDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveStep records one completed step.
func (m *ChainMetrics) ObserveStep(index int, outcome string, compactness float64, proposal time.Duration) {
	if m == nil {
		return
	}
	m.Steps.WithLabelValues(outcome).Inc()
	m.Step.Set(float64(index))
	m.Compactness.Set(compactness)
	m.ProposalDuration.Observe(proposal.Seconds())
}

// ObserveInitial records the time spent building the initial plan.
func (m *ChainMetrics) ObserveInitial(d time.Duration) {
	if m == nil {
		return
	}
	m.InitialDuration.Observe(d.Seconds())
}
