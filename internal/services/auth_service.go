package services

import (
	"errors"
	"fmt"

	"github.com/lromero/authgate-be/internal/auth"
	"github.com/lromero/authgate-be/internal/models"
	"github.com/lromero/authgate-be/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a failed
	// password check, so authentication failures do not reveal which.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnknownUser means the username is absent from the credential store.
	ErrUnknownUser = errors.New("unknown user")
)

// AuthServiceProvider defines the interface for authentication and user
// administration.
type AuthServiceProvider interface {
	Authenticate(username, password string) (string, error)
	VerifyToken(token string) error
	VerifyRole(username string) (models.Role, error)
	CreateUser(username, password string, role models.Role) (bool, error)
	DeleteUser(username string) (bool, error)
	UpdatePassword(username, password string) error
	ListUsers() (map[string]models.UserInfo, error)
}

// AuthService implements authentication against the flat-file credential
// store and token issuance/verification.
type AuthService struct {
	store  *store.FileStore
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store *store.FileStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Authenticate checks the username/password pair against the store and, on
// success, returns a freshly issued bearer token.
func (s *AuthService) Authenticate(username, password string) (string, error) {
	users, err := s.store.Load()
	if err != nil {
		return "", err
	}

	user, ok := users[username]
	if !ok {
		return "", ErrInvalidCredentials
	}

	match, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Stored credential could not be verified")
		return "", err
	}
	if !match {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// VerifyToken validates a bearer token. Verification is stateless and never
// touches the store, so a token outlives deletion of its user until expiry.
func (s *AuthService) VerifyToken(token string) error {
	_, err := s.tokens.Verify(token)
	return err
}

// VerifyRole returns the role recorded for the username.
func (s *AuthService) VerifyRole(username string) (models.Role, error) {
	users, err := s.store.Load()
	if err != nil {
		return "", err
	}

	user, ok := users[username]
	if !ok {
		return "", ErrUnknownUser
	}
	return user.Role, nil
}

// CreateUser adds a user with a hashed password. An already existing username
// is a normal false outcome, not an error; the store is left untouched.
func (s *AuthService) CreateUser(username, password string, role models.Role) (bool, error) {
	created := false
	err := s.store.Mutate(func(users map[string]models.UserRecord) (bool, error) {
		if _, exists := users[username]; exists {
			return false, nil
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return false, err
		}
		users[username] = models.UserRecord{Role: role, PasswordHash: hash}
		created = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	if created {
		log.Info().Str("username", username).Str("role", string(role)).Msg("New user added")
	}
	return created, nil
}

// DeleteUser removes a user. An absent username is a normal false outcome.
func (s *AuthService) DeleteUser(username string) (bool, error) {
	deleted := false
	err := s.store.Mutate(func(users map[string]models.UserRecord) (bool, error) {
		if _, exists := users[username]; !exists {
			return false, nil
		}
		delete(users, username)
		deleted = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	if deleted {
		log.Info().Str("username", username).Msg("User deleted")
	}
	return deleted, nil
}

// UpdatePassword rehashes and replaces the password of an existing user.
// Unlike create/delete, a missing username here is an error.
func (s *AuthService) UpdatePassword(username, password string) error {
	return s.store.Mutate(func(users map[string]models.UserRecord) (bool, error) {
		user, exists := users[username]
		if !exists {
			return false, ErrUnknownUser
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return false, err
		}
		user.PasswordHash = hash
		users[username] = user
		return true, nil
	})
}

// ListUsers returns the full mapping with password hashes redacted.
func (s *AuthService) ListUsers() (map[string]models.UserInfo, error) {
	users, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	list := make(map[string]models.UserInfo, len(users))
	for username, user := range users {
		list[username] = models.UserInfo{Role: user.Role}
	}
	return list, nil
}
