package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/service"
)

// Constants for context keys
const (
	ContextPrincipalKey = "principal"
)

// SessionCookieName is the cookie the browser pages read the token from.
const SessionCookieName = "session"

// Authenticate resolves the request's principal from an "Authorization: Bearer" header
// or the session cookie. Requests without credentials continue as the anonymous
// principal, leaving the decision to the service layer. Present but invalid
// credentials are rejected with 401.
func Authenticate(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		if tokenString == "" {
			c.Set(ContextPrincipalKey, domain.Principal{})
			c.Next()
			return
		}

		principal, err := tokens.ParsePrincipal(tokenString)
		if err != nil {
			if isPage(c) {
				// Drop the stale cookie so the next visit starts clean.
				c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
				renderStatusPage(c, http.StatusUnauthorized, "Your session has expired. Please sign in again.")
				c.Abort()
				return
			}
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// tokenFromRequest reports false for a malformed Authorization header.
func tokenFromRequest(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie, true
	}
	return "", true
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// principalFromContext returns the principal set by Authenticate, or the anonymous one.
func principalFromContext(c *gin.Context) domain.Principal {
	raw, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return domain.Principal{}
	}
	principal, ok := raw.(domain.Principal)
	if !ok {
		return domain.Principal{}
	}
	return principal
}

// requireAuth stops anonymous requests before any parameter or body is looked at,
// so callers without credentials only ever learn that they need to sign in.
func requireAuth(c *gin.Context) {
	if !principalFromContext(c).Authenticated() {
		respondError(c, service.ErrUnauthorized)
		return
	}
	c.Next()
}

// noStore marks responses that must never be served from a cache.
func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Next()
}

func isPage(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/dashboard")
}
