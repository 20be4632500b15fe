// Package private stores restricted-visibility payloads for policies. The
// payload is opaque: this layer never inspects it, and no linkage against
// the public policy record is enforced — the partitions are independent
// stores keyed by the same policy id.
package private

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"seguros/internal/ledger"
	"seguros/pkg/errors"
)

// Collection is the fixed restricted collection for client private data. The
// name is part of the storage contract shared with the original chaincode.
const Collection = "datosPrivadosCliente"

// Service reads and writes the private partition.
type Service struct {
	ledger ledger.Store
	logger *slog.Logger
	tracer trace.Tracer
}

// New constructs the private data service.
func New(store ledger.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ledger: store,
		logger: logger,
		tracer: otel.Tracer("seguros/private"),
	}
}

// Store writes payload for policyID into the restricted collection,
// overwriting any prior payload.
func (s *Service) Store(ctx context.Context, policyID string, payload []byte) error {
	ctx, span := s.tracer.Start(ctx, "private.store")
	defer span.End()

	if policyID == "" {
		return errors.New(errors.CodeBadRequest, "policy id is required")
	}

	if err := s.ledger.PutPrivate(ctx, Collection, policyID, payload); err != nil {
		return errors.Wrap(err, errors.CodeInternal, err.Error())
	}

	s.logger.InfoContext(ctx, "private data stored", "policy_id", policyID)
	return nil
}

// Get returns the exact bytes previously stored for policyID.
func (s *Service) Get(ctx context.Context, policyID string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "private.get")
	defer span.End()

	payload, err := s.ledger.GetPrivate(ctx, Collection, policyID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, err.Error())
	}
	if len(payload) == 0 {
		return nil, errors.Newf(errors.CodeNotFound, "no private data exists for policy %s", policyID)
	}
	return payload, nil
}
