package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// sessionTokenKey is the cookie-session key holding the opaque token.
	sessionTokenKey = "session_token"
	// contextSessionKey is the gin context key the resolved session is
	// attached under.
	contextSessionKey = "session"
)

// Guard gates requests on session authentication and privilege state before
// any handler runs. It is stateless given the resolved session.
type Guard struct {
	registry *Registry
}

// NewGuard creates a Guard backed by the session registry.
func NewGuard(registry *Registry) *Guard {
	return &Guard{registry: registry}
}

// ResolveSession reads the token from the cookie session, looks it up in the
// registry and attaches the result to the request context. Unknown or absent
// tokens resolve to an anonymous session. Every route goes through this.
func (g *Guard) ResolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := sessions.Default(c)
		token, _ := cookie.Get(sessionTokenKey).(string)
		c.Set(contextSessionKey, g.registry.Lookup(token))
	}
}

// RequireSession aborts with 401 unless the session is authenticated, and
// with 403 when requireAdmin is set and the session lacks the admin flag.
func (g *Guard) RequireSession(requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if requireAdmin && !sess.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// RequireVisitor aborts with 403 when the session is already authenticated.
// Used to block login and registration retries while logged in.
func (g *Guard) RequireVisitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).Authenticated {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "already logged in"})
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session ResolveSession attached to the request.
func CurrentSession(c *gin.Context) *Session {
	if v, ok := c.Get(contextSessionKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess
		}
	}
	return AnonymousSession()
}

// BindSessionCookie writes the session token into the cookie session.
func BindSessionCookie(c *gin.Context, token string) error {
	cookie := sessions.Default(c)
	cookie.Set(sessionTokenKey, token)
	return cookie.Save()
}

// ClearSessionCookie drops the token from the cookie session.
func ClearSessionCookie(c *gin.Context) error {
	cookie := sessions.Default(c)
	cookie.Delete(sessionTokenKey)
	return cookie.Save()
}
