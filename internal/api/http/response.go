package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"homestay-backend/internal/logger"
	"homestay-backend/internal/service"
	"homestay-backend/internal/validation"
)

// Envelope is the body of every JSON response. Code mirrors the HTTP status.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Code: status, Message: message, Data: data}); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, message, data)
}

// writeList answers 202 with a null payload when a query matched nothing.
func writeList[T any](w http.ResponseWriter, items []T, emptyMessage string) {
	if len(items) == 0 {
		writeJSON(w, http.StatusAccepted, emptyMessage, nil)
		return
	}
	writeOK(w, "Success", items)
}

// writeError maps service error kinds to a status. Internal errors are logged
// and replaced by a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, "Internal server error", nil)
		return
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		writeJSON(w, status, "Validation failed", fields)
		return
	}
	writeJSON(w, status, err.Error(), nil)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, message, nil)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
