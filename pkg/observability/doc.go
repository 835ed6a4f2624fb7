/*
Package observability turns editor commit events into logs and Prometheus metrics.

Both are delivered through domain.CommitHooks, so the editing core stays unaware
of where events go:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	ed := aasedit.New(aasedit.WithCommitHooks(observability.Combine(
		m.Hooks(),
		observability.LogHooks(logger),
	)))
*/
package observability
