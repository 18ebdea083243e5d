package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/electr1fy0/smartnotes/crypto"
)

// FileStore persists the session sealed with a key derived from secret.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	secret  string
	current *Session
	log     zerolog.Logger
}

// Open loads the session file at path if there is one. A file that cannot be
// decrypted or decoded is treated as no session.
func Open(path, secret string, log zerolog.Logger) (*FileStore, error) {
	if secret == "" {
		return nil, crypto.ErrEmptySecret
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create session dir")
	}

	fs := &FileStore{path: path, secret: secret, log: log}

	sealed, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read session file")
	}

	plain, err := crypto.Open(sealed, secret)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ignoring unreadable session file")
		return fs, nil
	}
	var s Session
	if err := json.Unmarshal(plain, &s); err != nil || s.Token == "" {
		log.Warn().Str("path", path).Msg("ignoring malformed session file")
		return fs, nil
	}
	fs.current = &s
	log.Debug().Str("email", s.User.Email).Msg("session restored")
	return fs, nil
}

func (f *FileStore) Get() (Session, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current == nil {
		return Session{}, false
	}
	return *f.current, true
}

func (f *FileStore) Token() string {
	s, _ := f.Get()
	return s.Token
}

func (f *FileStore) Set(s Session) error {
	if s.Token == "" {
		return ErrEmptyToken
	}
	plain, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	sealed, err := crypto.Seal(plain, f.secret)
	if err != nil {
		return errors.Wrap(err, "seal session")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := writeFileAtomic(f.path, sealed, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	f.current = &s
	return nil
}

// Clear drops the in-memory session and removes the file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp.%s.%d", filepath.Base(path), os.Getpid()))

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
