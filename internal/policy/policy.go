// Package policy groups the policy domain: the state machine and claims
// lifecycle (service), the wire records (models), the HTTP gateway
// (handler), and the lifecycle counters (metrics).
package policy

import (
	"log/slog"

	"seguros/internal/ledger"
	"seguros/internal/policy/handler"
	"seguros/internal/policy/service"
)

// Service owns policy and claim operations against the ledger.
type Service = service.Service

// Handler wires HTTP endpoints to the policy service.
type Handler = handler.Handler

// NewService constructs the policy service on the given substrate.
func NewService(store ledger.Store, opts ...service.Option) *Service {
	return service.New(store, opts...)
}

// NewHandler constructs the HTTP gateway for policy routes.
func NewHandler(policies handler.PolicyService, private handler.PrivateService, logger *slog.Logger) *Handler {
	return handler.New(policies, private, logger)
}
