package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhnhutZzz/alotra-storefront/models"
	"github.com/minhnhutZzz/alotra-storefront/store"
)

const (
	// SessionCookie is where browsers keep the id the original code held
	// in localStorage["sessionId"].
	SessionCookie = "alotra_session"
	SessionHeader = "X-Session-Id"

	// ContextSessionID is the gin context key downstream handlers read.
	ContextSessionID = "session_id"

	cookieMaxAge = 60 * 60 * 24 * 30
)

// EnsureSession resolves the caller's anonymous session id, minting one on
// first contact. The id rides on a cookie and is echoed in a response
// header so fetch-based clients can store it themselves.
//
// The id is a bearer credential: whoever presents it owns that cart and
// wishlist, the same trust model the storefront had when the id lived in
// localStorage. Nothing sensitive hangs off a session; real account data
// stays behind the backend's JWT auth.
func EnsureSession(sessions store.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}
		if !models.IsSessionID(id) {
			id = models.NewSessionID()
		}

		if _, err := sessions.Ensure(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
			c.Abort()
			return
		}

		c.SetCookie(SessionCookie, id, cookieMaxAge, "/", "", false, true)
		c.Header(SessionHeader, id)
		c.Set(ContextSessionID, id)
		c.Next()
	}
}

// SessionID reads the session id EnsureSession stored on the context.
func SessionID(c *gin.Context) string {
	id, _ := c.Get(ContextSessionID)
	s, _ := id.(string)
	return s
}

// OwnerID prefers an authenticated user id over the anonymous session id,
// so a logged-in user's cart follows their account instead of the browser.
func OwnerID(c *gin.Context) string {
	if uid, ok := c.Get("user_id"); ok {
		if s, ok := uid.(string); ok && s != "" {
			return s
		}
	}
	return SessionID(c)
}
