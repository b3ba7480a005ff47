package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"booking-service/internal/auth"
	"booking-service/internal/model"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxEmail  = "email"
)

// abortWithError stops the chain with the same error envelope the handlers
// emit, so auth failures read like every other error response.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"error":      http.StatusText(status),
		"message":    message,
		"path":       c.Request.URL.Path,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// JWTAuth verifies the Bearer token and injects the resolved identity into
// the request context. Everything behind it can assume an authenticated user.
func JWTAuth(tokens *auth.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxEmail, claims.Subject)
		c.Next()
	}
}

// RequireRole allows the request through only for the listed roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[c.GetString(ctxRole)]; !ok {
			abortWithError(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id set by JWTAuth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

// IsAdmin reports whether the authenticated user carries the ADMIN role.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxRole) == string(model.RoleAdmin)
}
