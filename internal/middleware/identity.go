package middleware

import (
	"course_hub_backend/internal/config"
	"course_hub_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// Identity resolves the caller's identity without enforcing it: a valid
// Bearer token puts its claims on the context, anything else is ignored.
// Authentication is handled upstream; this service trusts its callers.
func Identity(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}

// LearnerID returns the learner identity for the request: token claims
// when present, otherwise the user_id query parameter. Empty means the
// caller supplied no identity at all.
func LearnerID(c *gin.Context) string {
	if claims := util.GetUserFromContext(c); claims != nil && claims.UserID != "" {
		return claims.UserID
	}
	return c.Query("user_id")
}
