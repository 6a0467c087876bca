// Package session wraps cookie-backed sessions with the small surface the
// handlers need: the signed-in user, one-shot flash messages, and the URL
// to return to after login.
package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	keyUserID      = "user_id"
	keyRedirectURL = "redirect_url"

	flashSuccess = "_flash_success"
	flashError   = "_flash_error"
)

// Flashes holds the one-shot messages popped for a single render
type Flashes struct {
	Success []string
	Error   []string
}

// Config holds cookie session settings
type Config struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Manager reads and writes the session cookie
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager creates a session manager backed by a signed cookie store
func NewManager(cfg Config) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: cfg.CookieName}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// Get never fails for cookie stores in a way we can recover from;
	// a bad cookie yields a fresh session.
	s, _ := m.store.Get(r, m.name)
	return s
}

// UserID returns the signed-in user's record ID, or "" if anonymous
func (m *Manager) UserID(r *http.Request) string {
	s := m.get(r)
	if id, ok := s.Values[keyUserID].(string); ok {
		return id
	}
	return ""
}

// SignIn records the user in the session
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	s := m.get(r)
	s.Values[keyUserID] = userID
	return s.Save(r, w)
}

// SignOut clears the user from the session
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, keyUserID)
	return s.Save(r, w)
}

// Success queues a success flash message for the next render
func (m *Manager) Success(w http.ResponseWriter, r *http.Request, msg string) {
	s := m.get(r)
	s.AddFlash(msg, flashSuccess)
	_ = s.Save(r, w)
}

// Error queues an error flash message for the next render
func (m *Manager) Error(w http.ResponseWriter, r *http.Request, msg string) {
	s := m.get(r)
	s.AddFlash(msg, flashError)
	_ = s.Save(r, w)
}

// PopFlashes drains all queued flash messages
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) Flashes {
	s := m.get(r)
	var f Flashes
	for _, v := range s.Flashes(flashSuccess) {
		if msg, ok := v.(string); ok {
			f.Success = append(f.Success, msg)
		}
	}
	for _, v := range s.Flashes(flashError) {
		if msg, ok := v.(string); ok {
			f.Error = append(f.Error, msg)
		}
	}
	if len(f.Success) > 0 || len(f.Error) > 0 {
		_ = s.Save(r, w)
	}
	return f
}

// RememberURL stores the URL to return to after a successful login
func (m *Manager) RememberURL(w http.ResponseWriter, r *http.Request, url string) {
	s := m.get(r)
	s.Values[keyRedirectURL] = url
	_ = s.Save(r, w)
}

// PopRedirectURL returns and clears the remembered URL, or "" if none
func (m *Manager) PopRedirectURL(w http.ResponseWriter, r *http.Request) string {
	s := m.get(r)
	url, ok := s.Values[keyRedirectURL].(string)
	if !ok {
		return ""
	}
	delete(s.Values, keyRedirectURL)
	_ = s.Save(r, w)
	return url
}
