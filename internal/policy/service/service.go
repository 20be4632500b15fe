// Package service owns the policy state machine and the claims lifecycle.
// Every mutating operation is one read-validate-mutate-write round against
// the ledger substrate: the full record is re-read, one change applied, and
// the full record written back. Conflict detection between concurrent
// writers belongs to the substrate; this layer never locks or retries.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"seguros/internal/ledger"
	"seguros/internal/platform/audit"
	"seguros/internal/policy/metrics"
	"seguros/internal/policy/models"
	"seguros/pkg/errors"
	"seguros/pkg/requestcontext"
)

// Service orchestrates policy and claim operations against the ledger.
type Service struct {
	ledger  ledger.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics wires lifecycle counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditPublisher wires the lifecycle event publisher.
func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

// New constructs the policy service. Only the ledger store is required.
func New(store ledger.Store, opts ...Option) *Service {
	s := &Service{
		ledger: store,
		logger: slog.Default(),
		audit:  audit.Nop{},
		tracer: otel.Tracer("seguros/policy"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePolicyInput carries the caller-supplied policy fields. InsuredValue
// and TermMonths stay decimal strings end to end; only the premium
// calculator ever parses them.
type CreatePolicyInput struct {
	ID           string
	Holder       string
	Kind         string
	InsuredValue string
	TermMonths   string
}

// CreatePolicy stores a new ACTIVE policy under its id and returns the
// stored record.
//
// No existence check is performed: creating twice with the same id
// overwrites, and the prior record remains reachable through the history
// stream. Callers own id uniqueness.
func (s *Service) CreatePolicy(ctx context.Context, in CreatePolicyInput) (*models.Policy, error) {
	ctx, span := s.tracer.Start(ctx, "policy.create")
	defer span.End()

	if in.ID == "" {
		return nil, errors.New(errors.CodeBadRequest, "policy id is required")
	}

	policy := &models.Policy{
		ID:           in.ID,
		Holder:       in.Holder,
		Kind:         in.Kind,
		InsuredValue: in.InsuredValue,
		TermMonths:   in.TermMonths,
		Status:       models.StatusActive,
		CreatedAt:    timestamp(ctx),
		Claims:       []models.Claim{},
	}

	if err := s.writePolicy(ctx, policy); err != nil {
		return nil, err
	}

	s.metrics.IncPoliciesCreated()
	s.emit(ctx, audit.EventPolicyCreated, policy.ID, "")
	s.logger.InfoContext(ctx, "policy created", "policy_id", policy.ID, "kind", policy.Kind)
	return policy, nil
}

// GetPolicy reads the policy stored under id.
func (s *Service) GetPolicy(ctx context.Context, id string) (*models.Policy, error) {
	ctx, span := s.tracer.Start(ctx, "policy.get")
	defer span.End()

	return s.readPolicy(ctx, id)
}

// RenewPolicy sets a new term and stamps the renewal time. The status is not
// consulted: a cancelled policy renews like any other, matching the
// documented state machine.
func (s *Service) RenewPolicy(ctx context.Context, id, termMonths string) (*models.Policy, error) {
	ctx, span := s.tracer.Start(ctx, "policy.renew")
	defer span.End()

	policy, err := s.readPolicy(ctx, id)
	if err != nil {
		return nil, err
	}

	policy.TermMonths = termMonths
	policy.RenewedAt = timestamp(ctx)

	if err := s.writePolicy(ctx, policy); err != nil {
		return nil, err
	}

	s.metrics.IncPoliciesRenewed()
	s.emit(ctx, audit.EventPolicyRenewed, policy.ID, "")
	s.logger.InfoContext(ctx, "policy renewed", "policy_id", policy.ID, "term_months", termMonths)
	return policy, nil
}

// CancelPolicy marks the policy CANCELLED with a reason. Re-cancelling
// rewrites the same terminal fields; the output shape is idempotent.
func (s *Service) CancelPolicy(ctx context.Context, id, reason string) (*models.Policy, error) {
	ctx, span := s.tracer.Start(ctx, "policy.cancel")
	defer span.End()

	policy, err := s.readPolicy(ctx, id)
	if err != nil {
		return nil, err
	}

	policy.Status = models.StatusCancelled
	policy.CancellationReason = reason
	policy.CancelledAt = timestamp(ctx)

	if err := s.writePolicy(ctx, policy); err != nil {
		return nil, err
	}

	s.metrics.IncPoliciesCancelled()
	s.emit(ctx, audit.EventPolicyCancelled, policy.ID, "")
	s.logger.InfoContext(ctx, "policy cancelled", "policy_id", policy.ID, "reason", reason)
	return policy, nil
}

// readPolicy loads and decodes the record at id, translating absence into
// the stable not-found message.
func (s *Service) readPolicy(ctx context.Context, id string) (*models.Policy, error) {
	raw, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, err.Error())
	}
	if len(raw) == 0 {
		return nil, errors.Newf(errors.CodeNotFound, "policy %s does not exist", id)
	}

	var policy models.Policy
	if err := json.Unmarshal(raw, &policy); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "decode policy "+id)
	}
	return &policy, nil
}

func (s *Service) writePolicy(ctx context.Context, policy *models.Policy) error {
	raw, err := json.Marshal(policy)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "encode policy "+policy.ID)
	}
	if err := s.ledger.Put(ctx, policy.ID, raw); err != nil {
		// Substrate failures carry their own message; preserve it verbatim.
		return errors.Wrap(err, errors.CodeInternal, err.Error())
	}
	return nil
}

// emit publishes a lifecycle event. The ledger write has already committed,
// so failures are logged and swallowed.
func (s *Service) emit(ctx context.Context, eventType, policyID, claimID string) {
	event := audit.Event{
		Type:     eventType,
		PolicyID: policyID,
		ClaimID:  claimID,
		At:       requestcontext.Now(ctx).UTC(),
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit publish failed",
			"event", eventType, "policy_id", policyID, "error", err.Error())
	}
}

// Wire timestamps are RFC3339 in UTC.
const timeFormat = time.RFC3339

func timestamp(ctx context.Context) string {
	return requestcontext.Now(ctx).UTC().Format(timeFormat)
}
