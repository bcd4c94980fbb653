package core

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware resolves an optional bearer token on every request. A valid
// token attaches the caller's identity to the request context; a missing or
// invalid token leaves the request unauthenticated without failing it.
// Endpoints that need identity enforce it themselves via requireIdentity.
func AuthMiddleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c.Request); raw != "" {
			if identity, ok := tokens.Validate(c.Request.Context(), raw); ok {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// CurrentIdentity returns the identity attached by AuthMiddleware, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// requireIdentity responds 401 and aborts when no identity is attached.
func requireIdentity(c *gin.Context) (Identity, bool) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		c.Abort()
		return Identity{}, false
	}
	return identity, true
}
