package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
)

// AdminController backs the kitchen screens: the open order queue and the
// status buttons.
type AdminController struct {
	Orders *services.OrderService
}

func NewAdminController(orders *services.OrderService) *AdminController {
	return &AdminController{Orders: orders}
}

// GetOrderFlow lists every order not yet delivered.
func (ac *AdminController) GetOrderFlow(c *gin.Context) {
	orders, err := ac.Orders.ListActive(c.Request.Context())
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondWith(c, http.StatusOK, gin.H{
		"count": len(orders),
		"data":  orders,
	})
}

// UpdateOrderStatus -> Pending > Preparing > Ready > Delivered
func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.RespondJSON(c, http.StatusNotFound, "Order not found", nil)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status is required"))
		return
	}

	order, err := ac.Orders.AdvanceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
