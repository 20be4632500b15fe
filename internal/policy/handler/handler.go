// Package handler exposes the HTTP gateway. It translates JSON requests into
// service invocations and domain errors into status codes; no business rules
// live here.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"seguros/internal/policy/models"
	"seguros/internal/policy/service"
	"seguros/internal/premium"
	"seguros/pkg/errors"
	"seguros/pkg/platform/httputil"
	"seguros/pkg/requestcontext"
)

// CreatePolicyInput mirrors the service input type so callers of this
// package depend on one import.
type CreatePolicyInput = service.CreatePolicyInput

// PolicyService is the slice of the policy service the gateway needs.
type PolicyService interface {
	CreatePolicy(ctx context.Context, in CreatePolicyInput) (*models.Policy, error)
	GetPolicy(ctx context.Context, id string) (*models.Policy, error)
	RenewPolicy(ctx context.Context, id, termMonths string) (*models.Policy, error)
	CancelPolicy(ctx context.Context, id, reason string) (*models.Policy, error)
	RegisterClaim(ctx context.Context, claimID, policyID, description, amount string) (*models.Claim, error)
	ProcessClaim(ctx context.Context, claimID, policyID, status, comment string) (*models.Claim, error)
	History(ctx context.Context, id string) ([]models.HistoryEntry, error)
}

// PrivateService is the slice of the private-data service the gateway needs.
type PrivateService interface {
	Store(ctx context.Context, policyID string, payload []byte) error
	Get(ctx context.Context, policyID string) ([]byte, error)
}

// Handler wires policy routes to the services.
type Handler struct {
	policies PolicyService
	private  PrivateService
	logger   *slog.Logger
}

// New creates the gateway handler.
func New(policies PolicyService, private PrivateService, logger *slog.Logger) *Handler {
	return &Handler{policies: policies, private: private, logger: logger}
}

// Register mounts all gateway routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/polizas", h.handleCreatePolicy)
		r.Get("/polizas/{id}", h.handleGetPolicy)
		r.Post("/polizas/{id}/renew", h.handleRenewPolicy)
		r.Post("/polizas/{id}/cancel", h.handleCancelPolicy)
		r.Post("/polizas/{id}/claims", h.handleRegisterClaim)
		r.Post("/polizas/{id}/claims/{claimID}/process", h.handleProcessClaim)
		r.Get("/polizas/{id}/history", h.handleHistory)
		r.Put("/polizas/{id}/private", h.handleStorePrivate)
		r.Get("/polizas/{id}/private", h.handleGetPrivate)
		r.Post("/premium", h.handleCalculatePremium)
	})
}

type createPolicyRequest struct {
	ID           string `json:"id"`
	Holder       string `json:"holder"`
	Kind         string `json:"kind"`
	InsuredValue string `json:"insuredValue"`
	TermMonths   string `json:"termMonths"`
}

func (h *Handler) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req createPolicyRequest
	if !h.decode(w, r, &req) {
		return
	}

	policy, err := h.policies.CreatePolicy(r.Context(), CreatePolicyInput{
		ID:           req.ID,
		Holder:       req.Holder,
		Kind:         req.Kind,
		InsuredValue: req.InsuredValue,
		TermMonths:   req.TermMonths,
	})
	if err != nil {
		h.fail(w, r, "create policy", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, policy)
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.policies.GetPolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get policy", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policy)
}

func (h *Handler) handleRenewPolicy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TermMonths string `json:"termMonths"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	policy, err := h.policies.RenewPolicy(r.Context(), chi.URLParam(r, "id"), req.TermMonths)
	if err != nil {
		h.fail(w, r, "renew policy", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policy)
}

func (h *Handler) handleCancelPolicy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	policy, err := h.policies.CancelPolicy(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.fail(w, r, "cancel policy", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policy)
}

func (h *Handler) handleRegisterClaim(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Amount      string `json:"amount"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	claim, err := h.policies.RegisterClaim(r.Context(),
		req.ID, chi.URLParam(r, "id"), req.Description, req.Amount)
	if err != nil {
		h.fail(w, r, "register claim", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, claim)
}

func (h *Handler) handleProcessClaim(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status  string `json:"status"`
		Comment string `json:"comment"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	claim, err := h.policies.ProcessClaim(r.Context(),
		chi.URLParam(r, "claimID"), chi.URLParam(r, "id"), req.Status, req.Comment)
	if err != nil {
		h.fail(w, r, "process claim", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, claim)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.policies.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "policy history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleStorePrivate(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, errors.New(errors.CodeBadRequest, "unreadable request body"))
		return
	}

	if err := h.private.Store(r.Context(), chi.URLParam(r, "id"), payload); err != nil {
		h.fail(w, r, "store private data", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPrivate(w http.ResponseWriter, r *http.Request) {
	payload, err := h.private.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get private data", err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) handleCalculatePremium(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind         string `json:"kind"`
		InsuredValue string `json:"insuredValue"`
		RiskTier     string `json:"riskTier"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	result, err := premium.Calculate(req.Kind, req.InsuredValue, req.RiskTier)
	if err != nil {
		h.fail(w, r, "calculate premium", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"premium": result})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httputil.WriteError(w, errors.New(errors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	if errors.Is(err, errors.CodeInternal) {
		h.logger.ErrorContext(ctx, "operation failed",
			"op", op, "error", err.Error(),
			"request_id", requestcontext.RequestID(ctx))
	} else {
		h.logger.WarnContext(ctx, "operation rejected",
			"op", op, "error", err.Error(),
			"request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}
