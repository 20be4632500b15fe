package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"seguros/internal/ledger/memory"
	"seguros/internal/platform/middleware"
	"seguros/internal/policy/service"
	"seguros/internal/private"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	policies := service.New(store, service.WithLogger(logger))
	privateData := private.New(store, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	New(policies, privateData, logger).Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createPolicy(t *testing.T, router http.Handler, id string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/polizas", map[string]string{
		"id": id, "holder": "Ana", "kind": "Auto", "insuredValue": "20000", "termMonths": "12",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating policy, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreatePolicyReturnsWireRecord(t *testing.T) {
	router := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/polizas", map[string]string{
		"id": "POL-1", "holder": "Ana", "kind": "Auto", "insuredValue": "20000", "termMonths": "12",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Wire field names follow the original chaincode schema.
	if body["ID"] != "POL-1" || body["Titular"] != "Ana" || body["Estado"] != "ACTIVE" {
		t.Fatalf("unexpected wire record: %v", body)
	}
	if _, ok := body["FechaCreacion"]; !ok {
		t.Fatalf("expected FechaCreacion in response: %v", body)
	}
	claims, ok := body["Reclamaciones"].([]any)
	if !ok || len(claims) != 0 {
		t.Fatalf("expected empty Reclamaciones array, got %v", body["Reclamaciones"])
	}
}

func TestGetUnknownPolicyReturns404(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/polizas/POL-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "not_found" {
		t.Fatalf("expected not_found error code, got %q", body["error"])
	}
	if body["error_description"] != "policy POL-9 does not exist" {
		t.Fatalf("unexpected error description: %q", body["error_description"])
	}
}

func TestRenewAndCancelFlow(t *testing.T) {
	router := newRouter(t)
	createPolicy(t, router, "POL-1")

	rec := doJSON(t, router, http.MethodPost, "/api/polizas/POL-1/renew", map[string]string{"termMonths": "24"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 renewing, got %d", rec.Code)
	}
	var renewed map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&renewed); err != nil {
		t.Fatalf("decode renew response: %v", err)
	}
	if renewed["Duracion"] != "24" || renewed["FechaRenovacion"] == nil {
		t.Fatalf("unexpected renew record: %v", renewed)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/polizas/POL-1/cancel", map[string]string{"reason": "sold"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 cancelling, got %d", rec.Code)
	}
	var cancelled map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&cancelled); err != nil {
		t.Fatalf("decode cancel response: %v", err)
	}
	if cancelled["Estado"] != "CANCELLED" || cancelled["MotivoCancelacion"] != "sold" {
		t.Fatalf("unexpected cancel record: %v", cancelled)
	}
}

func TestClaimEndpoints(t *testing.T) {
	router := newRouter(t)
	createPolicy(t, router, "POL-1")

	rec := doJSON(t, router, http.MethodPost, "/api/polizas/POL-1/claims", map[string]string{
		"id": "CLM-1", "description": "hail damage", "amount": "800",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering claim, got %d: %s", rec.Code, rec.Body.String())
	}
	var claim map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&claim); err != nil {
		t.Fatalf("decode claim: %v", err)
	}
	if claim["Estado"] != "PENDING" || claim["Monto"] != "800" {
		t.Fatalf("unexpected claim record: %v", claim)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/polizas/POL-1/claims/CLM-1/process", map[string]string{
		"status": "APPROVED", "comment": "covered",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 processing claim, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.NewDecoder(rec.Body).Decode(&claim); err != nil {
		t.Fatalf("decode processed claim: %v", err)
	}
	if claim["Estado"] != "APPROVED" || claim["Comentario"] != "covered" {
		t.Fatalf("unexpected processed claim: %v", claim)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/polizas/POL-1/claims/CLM-9/process", map[string]string{
		"status": "APPROVED",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown claim, got %d", rec.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	router := newRouter(t)
	createPolicy(t, router, "POL-1")

	rec := doJSON(t, router, http.MethodPost, "/api/polizas/POL-1/renew", map[string]string{"termMonths": "24"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 renewing, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/polizas/POL-1/history", nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200 history, got %d", rec2.Code)
	}

	var entries []map[string]any
	if err := json.NewDecoder(rec2.Body).Decode(&entries); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if entries[0]["TxId"] == "" || entries[0]["IsDelete"] != false {
		t.Fatalf("unexpected history entry: %v", entries[0])
	}
}

func TestPrivateDataEndpoints(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/polizas/POL-1/private", strings.NewReader("confidential payload"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 storing private data, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/polizas/POL-1/private", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 reading private data, got %d", rec.Code)
	}
	if rec.Body.String() != "confidential payload" {
		t.Fatalf("expected exact payload back, got %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/polizas/POL-2/private", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing private data, got %d", rec.Code)
	}
}

func TestPremiumEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/premium", map[string]string{
		"kind": "Auto", "insuredValue": "20000", "riskTier": "LOW",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode premium response: %v", err)
	}
	if body["premium"] != "800.00" {
		t.Fatalf("expected premium 800.00, got %q", body["premium"])
	}

	rec = doJSON(t, router, http.MethodPost, "/api/premium", map[string]string{
		"kind": "Auto", "insuredValue": "not-a-number", "riskTier": "LOW",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad insured value, got %d", rec.Code)
	}
}

func TestMalformedJSONReturns400(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/polizas", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}
