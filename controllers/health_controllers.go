package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/utils"
)

type HealthController struct {
	Environment string
	now         func() time.Time
}

func NewHealthController(environment string) *HealthController {
	return &HealthController{Environment: environment, now: time.Now}
}

func (hc *HealthController) Health(c *gin.Context) {
	utils.RespondWith(c, http.StatusOK, gin.H{
		"message":     "Lumière API is running",
		"timestamp":   hc.now().UTC().Format(time.RFC3339),
		"environment": hc.Environment,
	})
}
