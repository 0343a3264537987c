package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lromero/authgate-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for authentication and verification.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticate handles user login and token issuance.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Authentication error")
		respondError(w, http.StatusInternalServerError, "Authentication Error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"token":         token,
	})
}

// VerifyToken validates the bearer token in the Authorization header.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	// Expecting format: "Bearer <token>"
	var token string
	if parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		token = parts[1]
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Access denied")
		return
	}

	if err := h.service.VerifyToken(token); err != nil {
		log.Warn().Err(err).Msg("Token verification failed")
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// VerifyRole returns the stored role for the username in the query string.
func (h *AuthHandler) VerifyRole(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	role, err := h.service.VerifyRole(username)
	if err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			log.Warn().Str("username", username).Msg("Role lookup for unknown user")
			respondError(w, http.StatusUnauthorized, "Invalid username")
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Role lookup failed")
		respondError(w, http.StatusInternalServerError, "Unable to read user list")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"role": string(role)})
}
