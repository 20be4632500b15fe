// Package metrics holds the Prometheus metrics for policy and claim
// lifecycle operations. Construct once in main; services treat a nil
// *Metrics as "metrics disabled" so tests can omit it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts lifecycle events.
type Metrics struct {
	PoliciesCreated   prometheus.Counter
	PoliciesRenewed   prometheus.Counter
	PoliciesCancelled prometheus.Counter
	ClaimsRegistered  prometheus.Counter
	ClaimsProcessed   prometheus.Counter
}

// New creates and registers all policy metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PoliciesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seguros_policies_created_total",
			Help: "Total number of policies created.",
		}),
		PoliciesRenewed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seguros_policies_renewed_total",
			Help: "Total number of policy renewals.",
		}),
		PoliciesCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seguros_policies_cancelled_total",
			Help: "Total number of policy cancellations.",
		}),
		ClaimsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seguros_claims_registered_total",
			Help: "Total number of claims registered.",
		}),
		ClaimsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seguros_claims_processed_total",
			Help: "Total number of claims processed.",
		}),
	}
}

// IncPoliciesCreated is nil-safe.
func (m *Metrics) IncPoliciesCreated() {
	if m != nil {
		m.PoliciesCreated.Inc()
	}
}

// IncPoliciesRenewed is nil-safe.
func (m *Metrics) IncPoliciesRenewed() {
	if m != nil {
		m.PoliciesRenewed.Inc()
	}
}

// IncPoliciesCancelled is nil-safe.
func (m *Metrics) IncPoliciesCancelled() {
	if m != nil {
		m.PoliciesCancelled.Inc()
	}
}

// IncClaimsRegistered is nil-safe.
func (m *Metrics) IncClaimsRegistered() {
	if m != nil {
		m.ClaimsRegistered.Inc()
	}
}

// IncClaimsProcessed is nil-safe.
func (m *Metrics) IncClaimsProcessed() {
	if m != nil {
		m.ClaimsProcessed.Inc()
	}
}
