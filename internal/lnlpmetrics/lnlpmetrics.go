// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package lnlpmetrics publishes optional Prometheus instrumentation for
// the line- and document-resolver runtimes. A nil Registerer is
// perfectly usable -- every recording method becomes a no-op -- so the
// core stays usable with zero Prometheus setup for callers who don't
// want it.
package lnlpmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the resolver runtime's instrumentation surface.
type Metrics struct {
	resolverDuration          *prometheus.HistogramVec
	assignmentsEmitted        *prometheus.CounterVec
	spansAdded                prometheus.Counter
	associationIndexRebuilds  prometheus.Counter
	missingDependencyWarnings prometheus.Counter
}

// New registers the metrics against reg and returns a Metrics handle. If
// reg is nil, the returned Metrics records nothing; every method is safe
// to call regardless.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		resolverDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lnlp",
			Subsystem: "resolver",
			Name:      "duration_seconds",
			Help:      "Time spent in a single resolver pass.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resolver", "kind"}),
		assignmentsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lnlp",
			Subsystem: "resolver",
			Name:      "assignments_emitted_total",
			Help:      "Attribute assignments folded into a line's store.",
		}, []string{"resolver"}),
		spansAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lnlp",
			Subsystem: "document",
			Name:      "spans_added_total",
			Help:      "Semantic spans appended to a document.",
		}),
		associationIndexRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lnlp",
			Subsystem: "document",
			Name:      "association_index_rebuilds_total",
			Help:      "Times the association navigation index was rebuilt.",
		}),
		missingDependencyWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lnlp",
			Subsystem: "document",
			Name:      "missing_dependency_warnings_total",
			Help:      "Document resolver runs with an unmet declared dependency.",
		}),
	}
	reg.MustRegister(
		m.resolverDuration,
		m.assignmentsEmitted,
		m.spansAdded,
		m.associationIndexRebuilds,
		m.missingDependencyWarnings,
	)
	return m
}

// ObserveResolver records how long a resolver pass took.
func (m *Metrics) ObserveResolver(resolver, kind string, d time.Duration) {
	if m == nil || m.resolverDuration == nil {
		return
	}
	m.resolverDuration.WithLabelValues(resolver, kind).Observe(d.Seconds())
}

// AddAssignments records n assignments folded in by resolver.
func (m *Metrics) AddAssignments(resolver string, n int) {
	if m == nil || m.assignmentsEmitted == nil || n == 0 {
		return
	}
	m.assignmentsEmitted.WithLabelValues(resolver).Add(float64(n))
}

// AddSpans records n semantic spans appended to a document.
func (m *Metrics) AddSpans(n int) {
	if m == nil || m.spansAdded == nil || n == 0 {
		return
	}
	m.spansAdded.Add(float64(n))
}

// IncAssociationIndexRebuild records one association index rebuild.
func (m *Metrics) IncAssociationIndexRebuild() {
	if m == nil || m.associationIndexRebuilds == nil {
		return
	}
	m.associationIndexRebuilds.Inc()
}

// IncMissingDependencyWarning records one unmet document-resolver
// dependency.
func (m *Metrics) IncMissingDependencyWarning() {
	if m == nil || m.missingDependencyWarnings == nil {
		return
	}
	m.missingDependencyWarnings.Inc()
}
