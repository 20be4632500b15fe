// Package httputil centralizes JSON response writing so every handler maps
// domain error codes to HTTP statuses the same way.
package httputil

import (
	"encoding/json"
	"net/http"

	"seguros/pkg/errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to an HTTP status and writes the standard
// error body. Internal errors omit the description so substrate details never
// leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)

	body := map[string]string{"error": string(code)}
	if code != errors.CodeInternal {
		body["error_description"] = err.Error()
	}

	WriteJSON(w, statusFor(code), body)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.CodeBadRequest:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
