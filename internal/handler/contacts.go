package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/rocjay1/fam/internal/models"
	"github.com/rocjay1/fam/internal/services"
)

// HandleContacts handles GET, POST, and DELETE requests for guardian contacts.
func (d *Dependencies) HandleContacts(w http.ResponseWriter, r *http.Request) {
	if d.Contacts == nil {
		WriteError(w, http.StatusServiceUnavailable, "Contact directory is not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		contacts, err := d.Contacts.GetContacts(r.Context())
		if err != nil {
			slog.Error("failed to get contacts", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to get contacts: "+err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, contacts)

	case http.MethodPost:
		var contact models.Contact
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := contact.Validate(); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if contact.UserID != "" {
			if _, err := d.Moderator.User(contact.UserID); err != nil {
				WriteServiceError(w, err)
				return
			}
		}
		if contact.ID == "" {
			contact.ID = uuid.NewString()
		}

		if err := d.Contacts.SaveContact(r.Context(), contact); err != nil {
			slog.Error("failed to save contact", "id", contact.ID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to save contact: "+err.Error())
			return
		}
		slog.Info("saved contact", "id", contact.ID, "userId", contact.UserID)
		WriteJSON(w, http.StatusOK, contact)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "Missing contact ID")
			return
		}

		if err := d.Contacts.DeleteContact(r.Context(), id); err != nil {
			if errors.Is(err, services.ErrContactNotFound) {
				WriteError(w, http.StatusNotFound, err.Error())
				return
			}
			slog.Error("failed to delete contact", "id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to delete contact: "+err.Error())
			return
		}
		slog.Info("deleted contact", "id", id)
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
