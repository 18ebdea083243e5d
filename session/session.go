// Package session holds the credential and cached profile of the logged in
// user. Presence of a token is all the rest of the app checks; nothing here
// validates it.
package session

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/electr1fy0/smartnotes/api"
)

var ErrEmptyToken = errors.New("session: empty token")

type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// Store is the injectable session state. Token and user are always set and
// cleared together.
type Store interface {
	Get() (Session, bool)
	Token() string
	Set(Session) error
	Clear() error
}

// MemoryStore keeps the session for the lifetime of the process only.
type MemoryStore struct {
	mu      sync.RWMutex
	current *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

func (m *MemoryStore) Token() string {
	s, _ := m.Get()
	return s.Token
}

func (m *MemoryStore) Set(s Session) error {
	if s.Token == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return nil
}
