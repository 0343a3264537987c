package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Host            string
	Port            int
	JWTSecret       string
	AuthFilePath    string // persisted authentication document
	DefaultAuthPath string // bundled seed document for first start
}

// Load loads configuration from a .env file (if present) and the
// environment. A missing JWT_SECRET is a hard error: the server must never
// fall back to signing tokens with an empty secret.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return &Config{
		Host:            getEnv("HOST", "127.0.0.1"),
		Port:            port,
		JWTSecret:       secret,
		AuthFilePath:    getEnv("AUTH_FILE", "./data/authentication.json"),
		DefaultAuthPath: getEnv("DEFAULT_AUTH_FILE", "./data/default.authentication.json"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
