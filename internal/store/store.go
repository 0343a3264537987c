package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lromero/authgate-be/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	// ErrUnavailable means the authentication document is missing or unparsable.
	ErrUnavailable = errors.New("credential store unavailable")
	// ErrWrite means the authentication document could not be persisted.
	ErrWrite = errors.New("credential store write failed")
)

// FileStore persists the username -> UserRecord mapping as a single JSON
// document. Every load reads the full document and every save rewrites it;
// the document on disk is the sole source of truth between requests.
type FileStore struct {
	path string

	// mu serializes read-modify-write cycles so concurrent mutations
	// cannot clobber each other's saves.
	mu sync.Mutex
}

// New creates a FileStore for the document at path. If the document does not
// exist yet it is materialized verbatim from defaultPath; when the default is
// missing too, the store is left unseeded and loads will fail until a
// document appears.
func New(path, defaultPath string) *FileStore {
	s := &FileStore{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.seed(defaultPath); err != nil {
			log.Error().Err(err).Str("default", defaultPath).
				Msg("Cannot create authentication file from default")
		} else {
			log.Info().Str("path", path).
				Msg("Authentication file was missing and has been created from the default document")
		}
	}

	return s
}

func (s *FileStore) seed(defaultPath string) error {
	data, err := os.ReadFile(defaultPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Load reads and parses the full authentication document.
func (s *FileStore) Load() (map[string]models.UserRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	users := make(map[string]models.UserRecord)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return users, nil
}

// Save serializes the full mapping back to the document. The write goes to a
// temp file in the same directory followed by a rename, so a crash mid-write
// never leaves a truncated document behind.
func (s *FileStore) Save(users map[string]models.UserRecord) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".authentication-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Mutate runs fn inside a locked load-modify-save cycle. fn reports whether
// it changed the mapping; when it returns false the document is not
// rewritten. Mutations from concurrent requests are applied one at a time, so
// none of them is lost to a stale overwrite.
func (s *FileStore) Mutate(fn func(users map[string]models.UserRecord) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Load()
	if err != nil {
		return err
	}

	changed, err := fn(users)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.Save(users)
}
