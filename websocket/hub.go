package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is pushed to every connected admin dashboard when a booking or order
// lands.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

var clients = make(map[*websocket.Conn]bool)
var clientsMu sync.RWMutex
var Register = make(chan *websocket.Conn)
var Unregister = make(chan *websocket.Conn)
var Broadcast = make(chan Event, 16)

func RunHub() {
	for {
		select {
		case conn := <-Register:
			log.Println("Admin feed client connected")
			clientsMu.Lock()
			clients[conn] = true
			clientsMu.Unlock()
		case conn := <-Unregister:
			log.Println("Admin feed client disconnected")
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			stale := make([]*websocket.Conn, 0)
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending event to admin feed client: %v", err)
					conn.Close()
					stale = append(stale, conn)
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, conn := range stale {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Publish queues an event for the hub without blocking the request that
// produced it. Events are dropped when the buffer is full.
func Publish(eventType string, payload interface{}) {
	select {
	case Broadcast <- Event{Type: eventType, Payload: payload}:
	default:
		log.Printf("Admin feed buffer full, dropping %s event", eventType)
	}
}
