package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/utils"
)

// WebSocketAuthMiddleware authenticates upgrade requests. Browsers cannot
// set headers on a websocket handshake, so the token comes from ?token=
// and falls back to the Authorization header.
func WebSocketAuthMiddleware(issuer *utils.TokenIssuer, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = bearerToken(c.GetHeader("Authorization"))
		}
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Not authorized, no token"))
			c.Abort()
			return
		}
		authenticate(c, issuer, users, token)
	}
}
