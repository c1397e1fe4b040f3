// Package kds fans order and reservation events out to kitchen display
// clients connected over websocket.
package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
)

// Event types
const (
	EventOrderPlaced        = "order_placed"
	EventReservationCreated = "reservation_created"
	EventOrderStatus        = "order_status_changed"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks connected clients and the role each one authenticated with.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// Unregister drops and closes the connection. Safe to call twice.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) Len() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) BroadcastOrderPlaced(order models.Order) {
	h.Broadcast(Message{
		Event: EventOrderPlaced,
		Data: map[string]interface{}{
			"reference": order.Reference(),
			"order":     order,
		},
	})
}

func (h *Hub) BroadcastOrderStatusChanged(order models.Order) {
	h.Broadcast(Message{
		Event: EventOrderStatus,
		Data: map[string]interface{}{
			"reference": order.Reference(),
			"id":        order.ID,
			"status":    order.Status,
		},
	})
}

func (h *Hub) BroadcastReservationCreated(r models.Reservation) {
	h.Broadcast(Message{
		Event: EventReservationCreated,
		Data:  r,
	})
}

// Broadcast writes msg to every client. Clients whose write fails are
// dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("marshal kds message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithError(err).WithField("role", role).Error("kds write failed, dropping client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"event":   msg.Event,
		"clients": len(h.clients),
	}).Debug("Broadcast kds message")
}
