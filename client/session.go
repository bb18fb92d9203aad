package client

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// State is the session lifecycle phase.
type State int

const (
	StateAnonymous State = iota
	StateLoading   // token held, identity not yet resolved
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is the authenticated user context gating cart mutations.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

type profileResponse struct {
	User Identity `json:"user"`
}

// Session tracks the current authenticated identity. Cart state exists only
// while the session is authenticated.
type Session struct {
	api *Client

	mu       sync.RWMutex
	state    State
	identity *Identity

	onChange     []func(State)
	navigateHome func()
}

// NewSession wires the session to the facade: any 401 anywhere resets the
// session to anonymous.
func NewSession(api *Client) *Session {
	s := &Session{api: api, state: StateAnonymous}
	api.SetUnauthorizedHook(func() { s.reset() })
	return s
}

// SetNavigateHomeHook registers the navigate-to-root analogue invoked on
// logout.
func (s *Session) SetNavigateHomeHook(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigateHome = fn
}

// OnChange registers a state-transition observer (the cart manager reloads or
// resets from these).
func (s *Session) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Start resolves a stored token into an identity. A token that fails profile
// resolution is discarded, not retried.
func (s *Session) Start(ctx context.Context) {
	if _, ok := s.api.Tokens().Token(); !ok {
		s.setState(StateAnonymous, nil)
		return
	}

	s.setState(StateLoading, nil)

	var resp profileResponse
	if err := s.api.do(ctx, "GET", "/auth/profile", nil, &resp, true); err != nil {
		log.WithError(err).Debug("profile resolution failed, treating session as invalid")
		if clearErr := s.api.Tokens().Clear(); clearErr != nil {
			log.WithError(clearErr).Warn("failed to clear token")
		}
		s.setState(StateAnonymous, nil)
		return
	}

	s.setState(StateAuthenticated, &resp.User)
}

// Login authenticates with credentials and stores the issued token.
func (s *Session) Login(ctx context.Context, email, password string) (Identity, error) {
	return s.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and signs in.
func (s *Session) Register(ctx context.Context, name, email, password string) (Identity, error) {
	return s.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// AdminLogin authenticates against the back-office entry point.
func (s *Session) AdminLogin(ctx context.Context, email, password string) (Identity, error) {
	return s.authenticate(ctx, "/auth/admin/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (s *Session) authenticate(ctx context.Context, path string, body map[string]string) (Identity, error) {
	var resp authResponse
	if err := s.api.Post(ctx, path, body, &resp); err != nil {
		return Identity{}, err
	}

	if err := s.api.Tokens().SetToken(resp.Token); err != nil {
		log.WithError(err).Warn("failed to persist token")
	}
	s.setState(StateAuthenticated, &resp.User)
	return resp.User, nil
}

// Logout clears the credential and identity and navigates to the application
// root. No network call is made.
func (s *Session) Logout() {
	if err := s.api.Tokens().Clear(); err != nil {
		log.WithError(err).Warn("failed to clear token")
	}
	s.setState(StateAnonymous, nil)

	s.mu.RLock()
	home := s.navigateHome
	s.mu.RUnlock()
	if home != nil {
		home()
	}
}

// reset handles global 401 invalidation (token already cleared by the facade).
func (s *Session) reset() {
	s.setState(StateAnonymous, nil)
}

func (s *Session) setState(state State, identity *Identity) {
	s.mu.Lock()
	// A new identity under the same state (user B signing in over user A)
	// is still a transition: dependent state like the cart must reload.
	changed := s.state != state || !sameIdentity(s.identity, identity)
	s.state = state
	s.identity = identity
	observers := make([]func(State), len(s.onChange))
	copy(observers, s.onChange)
	s.mu.Unlock()

	if changed {
		for _, fn := range observers {
			fn(state)
		}
	}
}

func sameIdentity(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// CurrentState returns the lifecycle phase.
func (s *Session) CurrentState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether an identity is present.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentState() == StateAuthenticated
}

// Identity returns the current identity, or false when anonymous.
func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}
