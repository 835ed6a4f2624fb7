package observability

import (
	"context"

	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the commit collectors.
type Metrics struct {
	commits    *prometheus.CounterVec
	validation prometheus.Histogram
	nodes      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aasedit_commits_total",
				Help: "Total number of commit attempts by outcome",
			},
			[]string{"outcome"},
		),
		validation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aasedit_commit_validation_seconds",
			Help:    "Time spent validating commit candidates",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aasedit_tree_nodes",
			Help: "Node count of the tree after the last applied commit",
		}),
	}
	reg.MustRegister(m.commits, m.validation, m.nodes)
	return m
}

// Hooks returns commit hooks feeding the collectors.
func (m *Metrics) Hooks() domain.CommitHooks {
	return domain.CommitHooks{
		OnApplied: func(_ context.Context, e *domain.CommitEvent) {
			m.commits.WithLabelValues(string(domain.CommitApplied)).Inc()
			m.validation.Observe(e.Duration.Seconds())
			m.nodes.Set(float64(e.NodeCount))
		},
		OnRejected: func(_ context.Context, e *domain.CommitEvent) {
			m.commits.WithLabelValues(string(domain.CommitRejected)).Inc()
			m.validation.Observe(e.Duration.Seconds())
		},
	}
}
