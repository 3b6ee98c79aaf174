// Package metrics holds the Prometheus instrumentation for gate transitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all counters the gate lifecycle engine records.
type Metrics struct {
	ApprovalsTotal      prometheus.Counter
	RejectionsTotal     prometheus.Counter
	CheckoutsTotal      prometheus.Counter
	PlateMismatchTotal  prometheus.Counter
	StaleConflictsTotal prometheus.Counter
}

// New creates and registers all gate metrics with the default registry.
// Call once at startup; promauto panics on duplicate registration.
func New() *Metrics {
	return &Metrics{
		ApprovalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatecheck_approvals_total",
			Help: "Total number of drivers approved for entry",
		}),
		RejectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatecheck_rejections_total",
			Help: "Total number of drivers refused entry",
		}),
		CheckoutsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatecheck_checkouts_total",
			Help: "Total number of drivers checked out of the yard",
		}),
		PlateMismatchTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatecheck_plate_mismatch_total",
			Help: "Total number of approval attempts blocked by a plate mismatch",
		}),
		StaleConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatecheck_stale_conflicts_total",
			Help: "Total number of transitions lost to a concurrent officer",
		}),
	}
}

// The increment helpers are nil-safe so unit tests can pass a nil *Metrics
// without registering anything with the global registry.

func (m *Metrics) IncApprovals() {
	if m != nil {
		m.ApprovalsTotal.Inc()
	}
}

func (m *Metrics) IncRejections() {
	if m != nil {
		m.RejectionsTotal.Inc()
	}
}

func (m *Metrics) IncCheckouts() {
	if m != nil {
		m.CheckoutsTotal.Inc()
	}
}

func (m *Metrics) IncPlateMismatch() {
	if m != nil {
		m.PlateMismatchTotal.Inc()
	}
}

func (m *Metrics) IncStaleConflicts() {
	if m != nil {
		m.StaleConflictsTotal.Inc()
	}
}
