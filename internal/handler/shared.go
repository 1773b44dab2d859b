package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocjay1/fam/internal/fam"
	"github.com/rocjay1/fam/internal/models"
)

// Dependencies holds the services required by the handlers.
// Blob, Queue, Email and Contacts may be nil when their Azure endpoints are not configured.
type Dependencies struct {
	Moderator Moderator
	Blob      BlobClient
	Queue     QueueClient
	Email     EmailClient
	Contacts  ContactClient

	StatementQueue string
	NoticeQueue    string
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// errorResponse is the body written for controller and domain failures.
type errorResponse struct {
	Error string           `json:"error"`
	Code  models.ErrorCode `json:"code,omitempty"`
}

// StatusFor maps controller and domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, fam.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, fam.ErrUserLocked):
		return http.StatusLocked
	case errors.Is(err, fam.ErrUnknownUser), errors.Is(err, models.ErrUnknownBudget):
		return http.StatusNotFound
	case errors.Is(err, fam.ErrInvalidRegistration):
		return http.StatusBadRequest
	case errors.Is(err, fam.ErrDuplicateStatement), errors.Is(err, models.ErrBudgetLocked):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, models.ErrInvalidLimit),
		errors.Is(err, models.ErrDuplicateBudget):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError writes err with the status StatusFor assigns it.
func WriteServiceError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	resp := errorResponse{Error: err.Error()}

	var domainErr models.DomainError
	if errors.As(err, &domainErr) {
		resp.Code = domainErr.Code
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	} else {
		slog.Warn("request rejected", "status", status, "error", err)
	}
	WriteJSON(w, status, resp)
}
