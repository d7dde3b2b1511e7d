package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SNMurthy2003/Task-Assigner/internal/services"
)

const identityKey = "identity"

// RequireAuth verifies the bearer token and attaches the decoded identity
// to the request context. The downstream handler never runs on failure.
func RequireAuth(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token_format",
				"message": "Authorization header must use Bearer token",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Token is invalid or expired",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole is the role gate layered behind RequireAuth: the caller is
// already authenticated, so a role mismatch is a 403, not a 401.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFromContext(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "not_authenticated",
				"message": "Authentication required",
			})
			return
		}

		for _, role := range allowed {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "insufficient_role",
			"message": "Access denied: insufficient role",
		})
	}
}

func IdentityFromContext(c *gin.Context) *services.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*services.Identity)
	if !ok {
		return nil
	}
	return identity
}
