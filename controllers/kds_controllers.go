package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/lumiere-api/kds"
	"github.com/yeremiapane/lumiere-api/middlewares"
	"github.com/yeremiapane/lumiere-api/utils"
)

// KitchenController upgrades staff connections onto the kitchen display hub.
type KitchenController struct {
	Hub      *kds.Hub
	upgrader websocket.Upgrader
}

// NewKitchenController accepts upgrades from the given origins; "*" or an
// empty list allows any origin.
func NewKitchenController(hub *kds.Hub, origins []string) *KitchenController {
	allowed := make(map[string]bool, len(origins))
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return &KitchenController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || allowed[origin]
			},
		},
	}
}

// KDSHandler -> endpoint WebSocket
func (kc *KitchenController) KDSHandler(c *gin.Context) {
	role := c.GetString(middlewares.ContextRole)

	ws, err := kc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("kds upgrade failed")
		return
	}
	kc.Hub.Register(ws, role)

	// The display only listens; reading keeps control frames flowing and
	// tells us when the client goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kc.Hub.Unregister(ws)
}
