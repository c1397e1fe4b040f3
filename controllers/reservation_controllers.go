package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/middlewares"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

// CreateReservation books a table for the authenticated user.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Date            string `json:"date"`
		Time            string `json:"time"`
		Guests          int    `json:"guests"`
		SpecialRequests string `json:"specialRequests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errBadBody)
		return
	}

	userID, _ := middlewares.CurrentUserID(c)
	reservation, err := rc.Reservations.Create(c.Request.Context(), userID, services.ReservationInput{
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetMyReservations
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	userID, _ := middlewares.CurrentUserID(c)
	reservations, err := rc.Reservations.ListForUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondWith(c, http.StatusOK, gin.H{
		"count": len(reservations),
		"data":  reservations,
	})
}
