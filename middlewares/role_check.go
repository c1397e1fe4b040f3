package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/utils"
)

// RequireRole must run after an auth middleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Not authorized"))
			c.Abort()
			return
		}

		if r, _ := role.(string); !allowed[r] {
			utils.RespondError(c, http.StatusForbidden, errors.New("Access denied"))
			c.Abort()
			return
		}

		c.Next()
	}
}
