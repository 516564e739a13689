package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"
)

const (
	authUserIDContextKey = "auth_user_id"
	authRolesContextKey  = "auth_roles"
)

// RequireAuth returns a gin middleware that validates a Bearer token from the
// Authorization header using the given jwt.Service. On success the token's
// user ID and roles are stored in gin.Context for downstream handlers.
//
// Failures return 401 with the API error shape:
//
//	{"errorMessage": "...", "status": 401}
func RequireAuth(jwtSvc jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, "authorization required")
			return
		}

		parsed, err := jwtSvc.ValidateAndParse(token)
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(authUserIDContextKey, parsed.UserID)
		c.Set(authRolesContextKey, parsed.Roles)
		c.Next()
	}
}

// RequireRole returns a gin middleware that checks the authenticated user has
// at least one of the given roles. It must be registered after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		for _, r := range AuthRoles(c) {
			if _, ok := allowed[r]; ok {
				c.Next()
				return
			}
		}
		abortAuth(c, http.StatusForbidden, "insufficient permissions")
	}
}

// AuthUserID returns the authenticated user's ID stored by RequireAuth.
// Returns an empty string when the request is unauthenticated.
func AuthUserID(c *gin.Context) string {
	if v, exists := c.Get(authUserIDContextKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// AuthRoles returns the authenticated user's roles stored by RequireAuth.
func AuthRoles(c *gin.Context) []string {
	if v, exists := c.Get(authRolesContextKey); exists {
		if roles, ok := v.([]string); ok {
			return roles
		}
	}
	return nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortAuth(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"errorMessage": msg,
		"status":       status,
	})
}
