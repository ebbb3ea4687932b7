// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides bearer-token authentication. The middleware verifies a
// session JWT through an injected verifier and stores the resulting principal
// in the Gin context; handlers read it back with UserID(). Authorization is
// therefore always explicit principal-passing: there is no ambient session
// singleton anywhere in the application, and endpoints that require an owner
// simply refuse requests where no principal was established.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxKeyUserID is the Gin context key under which the authenticated
// principal's id is stored.
const ctxKeyUserID = "userID"

// SessionVerifier validates a session token and returns the principal (user
// id) it represents. Implementations must treat any failure as a verification
// failure rather than distinguishing causes to the caller.
type SessionVerifier func(token string) (string, error)

// UserID returns the authenticated principal set by RequireAuth, or ""
// when the request is anonymous.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RequireAuth returns middleware that rejects requests lacking a valid
// "Authorization: Bearer <token>" header with 401, and otherwise stores the
// verified principal in the context for handlers and downstream middleware
// (rate limiting keys, idempotency scoping, request logs).
func RequireAuth(verify SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			unauthorized(c)
			return
		}
		uid, err := verify(token)
		if err != nil || uid == "" {
			unauthorized(c)
			return
		}
		c.Set(ctxKeyUserID, uid)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value,
// tolerating case variance in the scheme.
func bearerToken(h string) string {
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// unauthorized aborts with the standard error envelope. The message never
// hints at why verification failed.
func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    "authentication required",
	})
}
