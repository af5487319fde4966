package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fna-backend/internal/shared/auth"
	"fna-backend/internal/shared/server/respond"
	"fna-backend/internal/shared/telemetry"
)

const (
	agentIDKey    = "agentId"
	agentEmailKey = "agentEmail"
	agentNameKey  = "agentName"
)

// publicPrefixes are reachable without a session.
var publicPrefixes = []string{
	"/api/v1/auth/",
	"/api/v1/public/",
	"/api/v1/health",
	"/metrics",
}

// Session validates the session cookie and stores the agent identity in
// context. Auth and public routes pass through unauthenticated.
func Session(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				// Best-effort identity so public routes like logout and
				// /auth/me can still see who is calling.
				if cookie, err := c.Cookie(auth.CookieName); err == nil {
					if claims, err := sessions.Verify(cookie); err == nil {
						storeClaims(c, claims)
					}
				}
				c.Next()
				return
			}
		}

		cookie, err := c.Cookie(auth.CookieName)
		if err != nil || strings.TrimSpace(cookie) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
			return
		}

		claims, err := sessions.Verify(cookie)
		if err != nil {
			telemetry.SecurityEvent("INVALID_TOKEN", map[string]any{
				"path": path,
				"ip":   c.ClientIP(),
			})
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired session", nil)
			return
		}

		storeClaims(c, claims)
		c.Next()
	}
}

func storeClaims(c *gin.Context, claims auth.Claims) {
	c.Set(agentIDKey, claims.AgentID)
	if claims.Email != "" {
		c.Set(agentEmailKey, claims.Email)
	}
	if name := strings.TrimSpace(claims.FirstName + " " + claims.LastName); name != "" {
		c.Set(agentNameKey, name)
	}
}

// AgentIDFromContext returns the authenticated agent ID, if any.
func AgentIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(agentIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// AgentEmailFromContext returns the authenticated agent's email, if present.
func AgentEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(agentEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// AgentNameFromContext returns the authenticated agent's display name, if present.
func AgentNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(agentNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
