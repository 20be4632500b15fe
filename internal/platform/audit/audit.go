// Package audit publishes policy and claim lifecycle events. Publishing is
// best-effort: the ledger write has already committed when an event is
// emitted, so a publish failure is logged by the caller, never surfaced.
package audit

import (
	"context"
	"time"
)

// Event types emitted by the policy service.
const (
	EventPolicyCreated   = "policy.created"
	EventPolicyRenewed   = "policy.renewed"
	EventPolicyCancelled = "policy.cancelled"
	EventClaimRegistered = "claim.registered"
	EventClaimProcessed  = "claim.processed"
)

// Event is one lifecycle occurrence.
type Event struct {
	Type     string    `json:"type"`
	PolicyID string    `json:"policy_id"`
	ClaimID  string    `json:"claim_id,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher emits lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards all events. Used when no broker is configured and in tests.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
