package client

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// TokenTTL matches the backend's JWT lifetime; a stored credential older than
// this is treated as absent.
const TokenTTL = 7 * 24 * time.Hour

// TokenStore is the durable credential slot shared between the session and the
// HTTP facade. Implementations must be safe for concurrent use.
type TokenStore interface {
	// Token returns the held token, or false when none is held or it expired.
	Token() (string, bool)
	// SetToken persists the token with a fixed TokenTTL expiry.
	SetToken(token string) error
	// Clear removes the token.
	Clear() error
}

// MemoryTokenStore keeps the token in process memory only.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	token   string
	expires time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || time.Now().After(s.expires) {
		return "", false
	}
	return s.token, true
}

func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expires = time.Now().Add(TokenTTL)
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expires = time.Time{}
	return nil
}

// FileTokenStore persists the token to a file, the CLI analogue of the
// browser's auth cookie.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return "", false
	}
	if st.Token == "" || time.Now().After(st.ExpiresAt) {
		return "", false
	}
	return st.Token, true
}

func (s *FileTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(storedToken{
		Token:     token,
		ExpiresAt: time.Now().Add(TokenTTL),
	})
	if err != nil {
		return errors.Wrap(err, "marshal token")
	}
	return errors.Wrap(os.WriteFile(s.path, data, 0o600), "write token file")
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove token file")
	}
	return nil
}
