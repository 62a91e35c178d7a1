package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Session binds an opaque token to an authenticated (or anonymous) identity.
type Session struct {
	Token         string
	UserID        uint
	Username      string
	IsAdmin       bool
	Authenticated bool
}

// AnonymousSession returns the session shape handed to visitors without a
// valid token.
func AnonymousSession() *Session {
	return &Session{}
}

// Registry is the process-wide mapping from session token to session state.
// Entries expire after the configured TTL; an expired or unknown token
// resolves to an anonymous session.
type Registry struct {
	sessions *cache.Cache
}

// NewRegistry creates a session registry. Sessions live for ttl and expired
// entries are swept every cleanup interval.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: cache.New(ttl, 10*time.Minute),
	}
}

// Create allocates a fresh token for the user and stores the session.
func (r *Registry) Create(userID uint, username string, isAdmin bool) *Session {
	s := &Session{
		Token:         uuid.NewString(),
		UserID:        userID,
		Username:      username,
		IsAdmin:       isAdmin,
		Authenticated: true,
	}
	r.sessions.SetDefault(s.Token, s)
	return s
}

// Lookup resolves a token to its session, or an anonymous session when the
// token is unknown or expired.
func (r *Registry) Lookup(token string) *Session {
	if token == "" {
		return AnonymousSession()
	}
	if v, found := r.sessions.Get(token); found {
		return v.(*Session)
	}
	return AnonymousSession()
}

// Destroy removes the session for the token. Destroying an absent token is a
// no-op.
func (r *Registry) Destroy(token string) {
	r.sessions.Delete(token)
}

// DestroyIf removes every session matching the predicate and returns how
// many were dropped. Used by the stale-session reaper.
func (r *Registry) DestroyIf(pred func(*Session) bool) int {
	dropped := 0
	for token, item := range r.sessions.Items() {
		if s, ok := item.Object.(*Session); ok && pred(s) {
			r.sessions.Delete(token)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.ItemCount()
}
