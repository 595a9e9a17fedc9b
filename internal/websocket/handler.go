package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection as a watcher of the given session and
// blocks until the peer disconnects. onReady callbacks run after registration,
// so frames they trigger reach this connection.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID uuid.UUID, onReady ...func()) {
	client := &Client{Hub: hub, Conn: c, SessionID: sessionID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	for _, fn := range onReady {
		fn()
	}
	client.readPump()
}
