package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocjay1/fam/internal/fam"
)

type loginRequest struct {
	UserID string `json:"userId"`
}

// HandleUsers lists the household (GET) or registers a new member (POST).
func (d *Dependencies) HandleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, d.Moderator.Users())

	case http.MethodPost:
		var req fam.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("invalid registration body", "error", err)
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := d.Moderator.Register(req)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, user)

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleLogin switches the current user.
func (d *Dependencies) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		WriteError(w, http.StatusBadRequest, "Missing userId")
		return
	}

	user, err := d.Moderator.Login(req.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// HandleLogout ends the current session.
func (d *Dependencies) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := d.Moderator.Logout(); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// HandleSession returns the logged in user. A locked session is ended and reported as 423.
func (d *Dependencies) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	user, err := d.Moderator.Current()
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
