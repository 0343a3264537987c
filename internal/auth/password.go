package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential means a stored password hash could not be parsed as a
// bcrypt hash, so the record cannot be verified against at all.
var ErrCorruptCredential = errors.New("corrupt stored credential")

// HashPassword produces a salted bcrypt hash of the plaintext. The salt is
// random per call, so hashing the same plaintext twice yields different
// strings; hashes are only comparable through CheckPassword.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword verifies the plaintext against a stored hash. A mismatch is a
// normal false result, not an error; any other bcrypt failure means the
// stored hash itself is malformed.
func CheckPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
}
