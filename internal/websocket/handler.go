package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs binds an upgraded connection to the hub and blocks until the
// peer goes away. Fiber's websocket handler owns the connection for the
// lifetime of this call, so the read loop runs here rather than in a
// goroutine.
func ServeWs(hub *Hub, conn *websocket.Conn, userID uuid.UUID) {
	client := &Client{Hub: hub, Conn: conn, UserID: userID, Send: make(chan []byte, 256)}
	hub.register <- client

	go client.writePump()
	client.readPump()
}
