// Package session keeps one feed state per browser session, identified by a
// cookie. The feed and the active view predicates are session state; the
// overlay store is shared, client-local persistence.
package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/feed"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/view"
)

const CookieName = "chatfeed_session"

// Session is the per-browser state: the feed, the active filter/search, and a
// one-shot error banner. Handlers hold the lock for the whole request so feed
// operations never interleave within a session.
type Session struct {
	mu     sync.Mutex
	Feed   *feed.State
	Filter string
	Query  string
	flash  string
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SetFlash stores an error banner shown on the next render.
func (s *Session) SetFlash(msg string) { s.flash = msg }

// TakeFlash returns and clears the pending banner.
func (s *Session) TakeFlash() string {
	msg := s.flash
	s.flash = ""
	return msg
}

// Registry maps session cookies to live sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	newFeed  func() *feed.State
}

func NewRegistry(newFeed func() *feed.State) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		newFeed:  newFeed,
	}
}

// Get returns the request's session, creating it (and setting the cookie) on
// first contact.
func (r *Registry) Get(w http.ResponseWriter, req *http.Request) *Session {
	var id string
	if cookie, err := req.Cookie(CookieName); err == nil && cookie.Value != "" {
		id = cookie.Value
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if sess, ok := r.sessions[id]; ok {
			return sess
		}
	}

	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	sess := &Session{
		Feed:   r.newFeed(),
		Filter: view.FilterAll,
	}
	r.sessions[id] = sess
	return sess
}
