package feed

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event tells subscribers that rows of a table changed. It carries no row
// payload: clients react by refetching the affected list and re-running
// their own visibility filtering.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

// Hub fans table-change events out to every connected websocket client.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		log:     log,
	}
}

// Handle owns a client connection for its lifetime. Incoming frames are
// drained and discarded; the feed is one-way.
func (hub *Hub) Handle(conn *websocket.Conn) {
	hub.register(conn)
	defer hub.unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes an event to every subscriber. Clients that fail to accept
// the write are dropped; slow consumers never block a mutation.
func (hub *Hub) Broadcast(table string, action string) {
	event := Event{Table: table, Action: action}

	hub.mu.Lock()
	defer hub.mu.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteJSON(event); err != nil {
			hub.log.Warn().Err(err).Str("table", table).Msg("dropping feed client")
			_ = conn.Close()
			delete(hub.clients, conn)
		}
	}
}

func (hub *Hub) ClientCount() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

func (hub *Hub) register(conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.clients[conn] = true
}

func (hub *Hub) unregister(conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.clients[conn] {
		delete(hub.clients, conn)
		_ = conn.Close()
	}
}
