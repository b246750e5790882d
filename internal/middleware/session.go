package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionIDKey    = "session_id"
	SessionCookie   = "krxdash_session"
	SessionIDHeader = "X-Session-ID"
)

// Session identifies the client behind each request.
// A valid X-Session-ID header wins, then the session cookie; otherwise a new
// id is issued as a cookie that lives for maxAge.
func Session(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(SessionIDHeader); id != "" && uuid.Validate(id) == nil {
			c.Set(SessionIDKey, id)
			c.Next()
			return
		}

		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		// Refresh the cookie on every request so active sessions never expire.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, int(maxAge.Seconds()), "/", "", false, true)

		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// GetSessionID retrieves the session id from the context
func GetSessionID(c *gin.Context) (string, bool) {
	id, exists := c.Get(SessionIDKey)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}

// RequireSession rejects requests that did not pass through Session
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetSessionID(c); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
