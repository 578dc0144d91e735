package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError sends a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeValidationError reports a domain validation failure as 422. Malformed
// request bodies are rejected with 400 before validation runs.
func writeValidationError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnprocessableEntity, err.Error())
}

// writeStoreError reports a failed load or save without leaking internals.
func writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "Record store operation failed",
		applog.FieldOperation, op,
		applog.FieldError, err)
	writeError(w, http.StatusInternalServerError, "record store unavailable")
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// namespace resolves the record namespace for a request. The ns query
// parameter wins; the server default applies otherwise.
func (s *Server) namespace(r *http.Request) string {
	if ns := strings.TrimSpace(r.URL.Query().Get("ns")); ns != "" {
		return ns
	}
	return s.defaultNS
}

// parseMonths reads the months query parameter, falling back to the server
// default. Values outside 1..120 are rejected.
func (s *Server) parseMonths(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("months"))
	if v == "" {
		return s.analysisMonths, nil
	}
	months, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid months %q: must be a number", v)
	}
	if months < 1 || months > 120 {
		return 0, fmt.Errorf("invalid months %d: must be between 1 and 120", months)
	}
	return months, nil
}

// parseDateParam reads an optional YYYY-MM-DD query parameter.
func parseDateParam(r *http.Request, name string, fallback core.Date) (core.Date, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return fallback, nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", name, v)
	}
	return d, nil
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
