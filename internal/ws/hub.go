package ws

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Client couples a dashboard connection with the employee it belongs to,
// so targeted sends (SendToUsers) can find it.
type Client struct {
	Conn       *websocket.Conn
	EmployeeID string
}

type Hub struct {
	Clients    map[*websocket.Conn]string // conn -> employee id
	Register   chan *Client
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]string),
		Register:   make(chan *Client),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client.Conn] = client.EmployeeID
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// SendToUsers delivers a message only to the connections owned by the
// given employee ids.
func (h *Hub) SendToUsers(employeeIDs []string, message []byte) {
	targets := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		targets[id] = true
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, employeeID := range h.Clients {
		if !targets[employeeID] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			delete(h.Clients, conn)
		}
	}
}
