// Package api provides HTTP handlers for the proposal intake API.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/proposal/internal/repository"
	"github.com/alexanderramin/proposal/internal/service"
)

// Handler serves the intake and session routes.
type Handler struct {
	intake   service.IntakeService
	sessions service.SessionService
	logger   *slog.Logger
}

// NewHandler creates a Handler. A nil logger falls back to slog.Default.
func NewHandler(intake service.IntakeService, sessions service.SessionService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{intake: intake, sessions: sessions, logger: logger}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service and repository errors onto status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	var mue *service.ModelUnavailableError

	switch {
	case errors.As(err, &ve):
		Error(w, http.StatusUnprocessableEntity, ve.Error())
	case errors.Is(err, repository.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.As(err, &mue):
		h.logger.ErrorContext(r.Context(), "model call failed", "role", mue.Role, "path", r.URL.Path, "error", err)
		Error(w, http.StatusBadGateway, mue.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
