package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"governance-backend/internal/shared/auth"
	"governance-backend/internal/shared/server/respond"
)

const (
	actorKey      = "actor"
	actorEmailKey = "actorEmail"
)

// SystemActor is the attribution used for unauthenticated service calls.
const SystemActor = "System"

// Auth resolves the acting identity for the request. A valid Bearer JWT sets
// the actor to the authenticated user; an invalid one is rejected; no token
// attributes the call to the system identity so automated callers keep
// working.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Set(actorKey, SystemActor)
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(actorKey, claims.Subject)
		if claims.Email != "" {
			c.Set(actorEmailKey, claims.Email)
		}
		c.Next()
	}
}

// ActorFromContext returns the acting identity, defaulting to the system
// identity when none was resolved.
func ActorFromContext(c *gin.Context) string {
	if c == nil {
		return SystemActor
	}
	if actor := c.GetString(actorKey); actor != "" {
		return actor
	}
	return SystemActor
}

// ActorEmailFromContext returns the authenticated actor's email, if any.
func ActorEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(actorEmailKey)
}
