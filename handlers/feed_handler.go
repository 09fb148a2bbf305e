package handlers

import (
	ws "github.com/badboujee/storefront/websocket"
	"github.com/gofiber/contrib/websocket"
)

// ServeAdminFeed keeps the connection registered with the hub until the
// dashboard disconnects. The client never sends anything meaningful; reads
// only detect the close.
func ServeAdminFeed(conn *websocket.Conn) {
	ws.Register <- conn
	defer func() {
		ws.Unregister <- conn
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
