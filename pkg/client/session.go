package client

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// State is what a Session persists between runs.
type State struct {
	Token    string `json:"token,omitempty"`
	Theme    string `json:"theme,omitempty"`
	ReturnTo string `json:"returnTo,omitempty"`
}

type Store interface {
	Load() (State, error)
	Save(State) error
}

// FileStore keeps the state as JSON in a single file readable only by the
// owner.
type FileStore struct {
	Path string
}

func DefaultStorePath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "wanderquest", "session.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wanderquest", "session.json")
}

func (f FileStore) Load() (State, error) {
	var st State
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, fmt.Errorf("session file %s: %w", f.Path, err)
	}
	return st, nil
}

func (f FileStore) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

// Session is the signed-in user, the theme and the page to return to after
// signing in. It implements TokenProvider so a Client always sends the
// current token.
type Session struct {
	mu      sync.RWMutex
	store   Store
	state   State
	profile *Profile
}

func NewSession(store Store) (*Session, error) {
	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	if st.Theme != ThemeDark {
		st.Theme = ThemeLight
	}
	return &Session{store: store, state: st}, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Session) Authenticated() bool {
	return s.Profile() != nil
}

// Restore validates a persisted token by loading the profile. A rejected
// token is forgotten; other errors leave it in place.
func (s *Session) Restore(ctx context.Context, c *Client) (*Profile, error) {
	if s.Token() == "" {
		return nil, nil
	}
	profile, err := c.Profile(ctx)
	if err != nil {
		if IsUnauthorized(err) {
			return nil, s.SignOut()
		}
		return nil, err
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return profile, nil
}

// SignIn logs in and returns the remembered return path, if any, which is
// then cleared.
func (s *Session) SignIn(ctx context.Context, c *Client, email, password string) (string, error) {
	token, err := c.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.begin(ctx, c, token)
}

func (s *Session) SignUp(ctx context.Context, c *Client, email, password string) (string, error) {
	token, err := c.Register(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.begin(ctx, c, token)
}

func (s *Session) begin(ctx context.Context, c *Client, token string) (string, error) {
	s.mu.Lock()
	s.state.Token = token
	s.mu.Unlock()

	profile, err := c.Profile(ctx)
	if err != nil {
		s.mu.Lock()
		s.state.Token = ""
		s.mu.Unlock()
		return "", err
	}

	s.mu.Lock()
	s.profile = profile
	returnTo := s.state.ReturnTo
	s.state.ReturnTo = ""
	st := s.state
	s.mu.Unlock()

	return returnTo, s.store.Save(st)
}

func (s *Session) SignOut() error {
	s.mu.Lock()
	s.state.Token = ""
	s.profile = nil
	st := s.state
	s.mu.Unlock()
	return s.store.Save(st)
}

func (s *Session) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Theme
}

func (s *Session) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	s.mu.Lock()
	s.state.Theme = theme
	st := s.state
	s.mu.Unlock()
	return s.store.Save(st)
}

func (s *Session) ToggleTheme() (string, error) {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	return next, s.SetTheme(next)
}

// IsGatedRoute reports whether route needs a signed-in user. Routes are
// written without a leading slash, e.g. "itineraries/42".
func IsGatedRoute(route string) bool {
	route = strings.Trim(route, "/")
	return route == "itineraries" || route == "create" || strings.HasPrefix(route, "itineraries/")
}

// Allow reports whether route may be shown. For a gated route without a
// signed-in user it remembers the route for SignIn and returns false.
func (s *Session) Allow(route string) (bool, error) {
	if !IsGatedRoute(route) || s.Authenticated() {
		return true, nil
	}
	s.mu.Lock()
	s.state.ReturnTo = strings.Trim(route, "/")
	st := s.state
	s.mu.Unlock()
	return false, s.store.Save(st)
}
