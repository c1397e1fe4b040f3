package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/cart"
	"github.com/yeremiapane/lumiere-api/middlewares"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
)

var errNotInCart = errors.New("Item not in cart")

// CartController serves the anonymous, session-scoped cart. The session id
// travels in the X-Cart-Session header and is issued on first contact.
type CartController struct {
	Carts  *cart.Store
	Menu   *services.MenuService
	Orders *services.OrderService
}

func NewCartController(carts *cart.Store, menu *services.MenuService, orders *services.OrderService) *CartController {
	return &CartController{Carts: carts, Menu: menu, Orders: orders}
}

// session returns the caller's cart session, minting one when the header is
// missing or malformed. The id is always echoed back.
func (cc *CartController) session(c *gin.Context) string {
	id := c.GetHeader(middlewares.CartSessionHeader)
	if !cart.ValidSessionID(id) {
		id = cart.NewSessionID()
	}
	c.Header(middlewares.CartSessionHeader, id)
	return id
}

func (cc *CartController) GetCart(c *gin.Context) {
	snap := cc.Carts.Snapshot(cc.session(c))
	utils.RespondWith(c, http.StatusOK, gin.H{"data": snap})
}

// AddItem adds one unit of a menu item, at its current catalog price.
func (cc *CartController) AddItem(c *gin.Context) {
	sessionID := cc.session(c)

	var req struct {
		ItemID uint `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("itemId is required"))
		return
	}

	item, err := cc.Menu.GetByID(c.Request.Context(), req.ItemID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	if !item.IsAvailable {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("%s is currently unavailable", item.Name))
		return
	}

	snap, _ := cc.Carts.Update(sessionID, func(ct *cart.Cart) error {
		ct.Add(cart.Item{ID: item.ID, Name: item.Name, Price: item.Price, Image: item.Image})
		return nil
	})
	utils.RespondWith(c, http.StatusOK, gin.H{"data": snap})
}

// UpdateItem sets a line's quantity. Anything below 1 is stored as 1; use
// RemoveItem to drop a line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	sessionID := cc.session(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errNotInCart)
		return
	}
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity is required"))
		return
	}

	snap, err := cc.Carts.Update(sessionID, func(ct *cart.Cart) error {
		if !ct.SetQuantity(id, *req.Quantity) {
			return errNotInCart
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondWith(c, http.StatusOK, gin.H{"data": snap})
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	sessionID := cc.session(c)
	id, _ := parseID(c.Param("id"))

	snap, _ := cc.Carts.Update(sessionID, func(ct *cart.Cart) error {
		ct.Remove(id)
		return nil
	})
	utils.RespondWith(c, http.StatusOK, gin.H{"data": snap})
}

func (cc *CartController) ClearCart(c *gin.Context) {
	sessionID := cc.session(c)
	snap, _ := cc.Carts.Update(sessionID, func(ct *cart.Cart) error {
		ct.Clear()
		return nil
	})
	utils.RespondWith(c, http.StatusOK, gin.H{"data": snap})
}

// Checkout turns the session cart into an order for the signed-in user.
// Once the order is stored, the ordered lines leave the cart.
func (cc *CartController) Checkout(c *gin.Context) {
	sessionID := cc.session(c)
	userID, _ := middlewares.CurrentUserID(c)

	snap := cc.Carts.Snapshot(sessionID)
	order, err := cc.Orders.Checkout(c.Request.Context(), userID, snap)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	cc.Carts.Settle(sessionID, snap)

	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}
