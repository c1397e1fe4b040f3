package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/middlewares"
	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
)

var errBadBody = errors.New("Invalid request body")

type AuthController struct {
	Auth   *services.AuthService
	Tokens *utils.TokenIssuer
}

func NewAuthController(auth *services.AuthService, tokens *utils.TokenIssuer) *AuthController {
	return &AuthController{Auth: auth, Tokens: tokens}
}

// Register creates an account and signs the user in.
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errBadBody)
		return
	}

	user, err := ac.Auth.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	ac.respondWithToken(c, http.StatusCreated, user)
}

// Login -> JWT
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errBadBody)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Please provide email and password"))
		return
	}

	user, err := ac.Auth.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	ac.respondWithToken(c, http.StatusOK, user)
}

// Me returns the authenticated user.
func (ac *AuthController) Me(c *gin.Context) {
	userID, _ := middlewares.CurrentUserID(c)
	user, err := ac.Auth.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondWith(c, http.StatusOK, gin.H{"user": user.Public()})
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Please provide current and new password"))
		return
	}

	userID, _ := middlewares.CurrentUserID(c)
	if err := ac.Auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Password updated successfully", nil)
}

func (ac *AuthController) respondWithToken(c *gin.Context, code int, user *models.User) {
	token, err := ac.Tokens.Issue(user.ID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondWith(c, code, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}
