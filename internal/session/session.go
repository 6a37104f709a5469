// Package session holds the signed-in vendor's auth state.
//
// Session is the single source of truth for the bearer token. The API
// client reads it through Token on every request; login sets it and
// logout clears it, both persisting through a Store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jacksmith/vendorctl/internal/storage"
	"github.com/zalando/go-keyring"
)

// ErrNotAuthenticated is returned by Require when no token is held.
var ErrNotAuthenticated = errors.New("not logged in (run `vendorctl login`)")

// State is the persisted auth state.
type State struct {
	Token         string
	Authenticated bool
}

// Store persists State.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
	Clear(ctx context.Context) error
}

// Session is the in-process auth state backed by a Store.
type Session struct {
	store Store

	mu    sync.RWMutex
	state State
}

// New returns an empty session persisted to store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Restore loads persisted state.
func (s *Session) Restore(ctx context.Context) error {
	st, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if st.Token == "" {
		st.Authenticated = false
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Authenticated reports whether a login has been recorded.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated && s.state.Token != ""
}

// Require returns the token or ErrNotAuthenticated.
func (s *Session) Require() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.Authenticated || s.state.Token == "" {
		return "", ErrNotAuthenticated
	}
	return s.state.Token, nil
}

// Set records a successful login.
func (s *Session) Set(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	st := State{Token: token, Authenticated: true}
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Clear forgets the token. The in-memory state is cleared even if the
// store fails, so a failed logout never leaves requests authenticated.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemoryStore keeps state in memory.
type MemoryStore struct {
	mu    sync.Mutex
	state State
}

func (m *MemoryStore) Load(context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemoryStore) Save(_ context.Context, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
	return nil
}

// FileStore keeps state in the storage directory's session file.
type FileStore struct {
	Storage *storage.Storage
}

func (f FileStore) Load(ctx context.Context) (State, error) {
	sf, err := f.Storage.LoadSession(ctx)
	if err != nil {
		return State{}, err
	}
	return State{Token: sf.Token, Authenticated: sf.IsAuthenticated}, nil
}

func (f FileStore) Save(ctx context.Context, st State) error {
	return f.Storage.SaveSession(ctx, &storage.SessionFile{
		Token:           st.Token,
		IsAuthenticated: st.Authenticated,
		SavedAt:         time.Now().UTC(),
	})
}

func (f FileStore) Clear(ctx context.Context) error {
	return f.Storage.DeleteSession(ctx)
}

// KeyringService is the OS keyring service name.
const KeyringService = "vendorctl"

// KeyringStore keeps the token in the OS keyring under Account, usually
// the API host. Presence of a token means authenticated.
type KeyringStore struct {
	Account string
}

func (k KeyringStore) Load(context.Context) (State, error) {
	token, err := keyring.Get(KeyringService, k.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read keyring: %w", err)
	}
	return State{Token: token, Authenticated: token != ""}, nil
}

func (k KeyringStore) Save(_ context.Context, st State) error {
	if err := keyring.Set(KeyringService, k.Account, st.Token); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}

func (k KeyringStore) Clear(context.Context) error {
	if err := keyring.Delete(KeyringService, k.Account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete keyring entry: %w", err)
	}
	return nil
}
