package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
)

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

// GetAllMenus lists available items. Query: category, search, sort, limit.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}

	items, err := mc.Menu.List(c.Request.Context(), services.MenuFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Limit:    limit,
	})
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	utils.RespondWith(c, http.StatusOK, gin.H{
		"count": len(items),
		"data":  items,
	})
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		utils.RespondJSON(c, http.StatusNotFound, "Menu item not found", nil)
		return
	}

	item, err := mc.Menu.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", item)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
