package middleware

import (
	"net/http"
	"strings"

	"user-messaging-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Auth is the authentication stage of the gate: it extracts the bearer token
// from the Authorization header, verifies signature and expiry, and injects
// the decoded claims into the request context. Verification is purely
// signature+expiry based; a logged-out session's access token stays usable
// until it expires.
func Auth(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header missing or malformed")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header missing or malformed")
			c.Abort()
			return
		}

		claims, err := jwt.Validate(parts[1])
		if err != nil {
			// One message for every verification failure; expired and
			// malformed are not distinguished.
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRole is the authorization stage: it compares the authenticated
// claim's role against the allowed set. It only ever runs behind Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient role")
		c.Abort()
	}
}

// UserID returns the authenticated user id set by Auth
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
