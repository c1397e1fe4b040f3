package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/middlewares"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetMyOrders
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, _ := middlewares.CurrentUserID(c)
	orders, err := oc.Orders.ListForUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondWith(c, http.StatusOK, gin.H{
		"count": len(orders),
		"data":  orders,
	})
}

// GetOrderByID only finds the caller's own orders.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.RespondJSON(c, http.StatusNotFound, "Order not found", nil)
		return
	}

	userID, _ := middlewares.CurrentUserID(c)
	order, err := oc.Orders.GetForUser(c.Request.Context(), userID, id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", order)
}
