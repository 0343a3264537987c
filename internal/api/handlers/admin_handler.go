package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lromero/authgate-be/internal/models"
	"github.com/lromero/authgate-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AdminHandler handles HTTP requests for user administration.
type AdminHandler struct {
	service services.AuthServiceProvider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service services.AuthServiceProvider) *AdminHandler {
	return &AdminHandler{service: service}
}

// CreateUserPayload defines the structure for user creation requests.
type CreateUserPayload struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// UsernamePayload carries requests that only name a user.
type UsernamePayload struct {
	Username string `json:"username"`
}

// UpdatePasswordPayload defines the structure for password update requests.
type UpdatePasswordPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUser adds a new user to the credential store. An existing username is
// a normal {"created": false} outcome, not an error.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateUser(payload.Username, payload.Password, payload.Role)
	if err != nil {
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to create user")
		respondError(w, http.StatusInternalServerError, "Unable to update user list")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"created": created})
}

// DeleteUser removes a user. An absent username is a normal
// {"deleted": false} outcome.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var payload UsernamePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	deleted, err := h.service.DeleteUser(payload.Username)
	if err != nil {
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to delete user")
		respondError(w, http.StatusInternalServerError, "Unable to update user list")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// ListUsers returns the user mapping with password hashes redacted.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read user list")
		respondError(w, http.StatusInternalServerError, "Unable to read user list")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// UpdatePassword replaces a user's password. The username must exist.
func (h *AdminHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var payload UpdatePasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdatePassword(payload.Username, payload.Password); err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			log.Warn().Str("username", payload.Username).Msg("Password update for unknown user")
			respondError(w, http.StatusUnauthorized, "Invalid username")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to update password")
		respondError(w, http.StatusInternalServerError, "Unable to update user list")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"updated": true})
}
