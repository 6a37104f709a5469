// Package storage provides file system operations for the vendorctl state
// directory (~/.config/vendorctl by default).
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

const (
	// appDir is the name of the state directory under the user config dir.
	appDir = "vendorctl"
	// sessionFile holds the persisted auth state.
	sessionFile = "session.yaml"
	// lockRetry is how often a busy session lock is retried.
	lockRetry = 20 * time.Millisecond
)

// SessionFile is the on-disk auth state.
type SessionFile struct {
	Token           string    `yaml:"token"`
	IsAuthenticated bool      `yaml:"is_authenticated"`
	SavedAt         time.Time `yaml:"saved_at,omitempty"`
}

// Storage provides access to a state directory.
type Storage struct {
	root string
}

// DefaultRoot returns the default state directory.
func DefaultRoot() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, appDir), nil
}

// Open returns a Storage for dir, creating it if needed.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultRoot(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &Storage{root: dir}, nil
}

// Root returns the state directory.
func (s *Storage) Root() string {
	return s.root
}

// SessionPath returns the path to the session file.
func (s *Storage) SessionPath() string {
	return filepath.Join(s.root, sessionFile)
}

func (s *Storage) lock(ctx context.Context) (*flock.Flock, error) {
	fl := flock.New(s.SessionPath() + ".lock")
	ok, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("failed to lock session: %s is held by another process", fl.Path())
	}
	return fl, nil
}

// LoadSession reads the session file. A missing file is an empty session.
func (s *Storage) LoadSession(ctx context.Context) (*SessionFile, error) {
	fl, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer fl.Unlock()

	data, err := os.ReadFile(s.SessionPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &SessionFile{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", sessionFile, err)
	}

	var sf SessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", sessionFile, err)
	}
	return &sf, nil
}

// SaveSession writes the session file readable only by the owner.
// The write goes through a temp file so readers never see a partial file.
func (s *Storage) SaveSession(ctx context.Context, sf *SessionFile) error {
	fl, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer fl.Unlock()

	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(s.root, sessionFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.SessionPath()); err != nil {
		return fmt.Errorf("failed to write %s: %w", sessionFile, err)
	}
	return nil
}

// DeleteSession removes the session file. A missing file is not an error.
func (s *Storage) DeleteSession(ctx context.Context) error {
	fl, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer fl.Unlock()

	if err := os.Remove(s.SessionPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
