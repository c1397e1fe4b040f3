package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
)

// Context keys set by the auth gate.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// UserLookup resolves the user a token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware accepts "Authorization: Bearer <token>" and rejects the
// request with 401 when the token is missing, bad, expired, or names a
// user that no longer exists.
func AuthMiddleware(issuer *utils.TokenIssuer, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Not authorized, no token"))
			c.Abort()
			return
		}
		authenticate(c, issuer, users, tokenString)
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func authenticate(c *gin.Context, issuer *utils.TokenIssuer, users UserLookup, tokenString string) {
	userID, err := issuer.Validate(tokenString)
	if errors.Is(err, utils.ErrExpiredToken) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Not authorized, token expired"))
		c.Abort()
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Not authorized, token failed"))
		c.Abort()
		return
	}

	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			utils.ErrorLogger.WithError(err).Error("auth: user lookup failed")
		}
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Not authorized, token failed"))
		c.Abort()
		return
	}

	c.Set(ContextUserID, user.ID)
	c.Set(ContextRole, user.Role)
	c.Next()
}

// CurrentUserID returns the id the auth gate stored on the context.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
