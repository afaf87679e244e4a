// Package events pushes refresh notifications to dashboard clients over
// websockets.
package events

import (
	"net/http"
	"sync"
	"time"

	"shipvoid-backend/internal/logging"
	"shipvoid-backend/internal/metrics"
	"shipvoid-backend/internal/models"

	"github.com/gorilla/websocket"
)

// Event is one message sent to every client
type Event struct {
	Type     string               `json:"type"`
	RunID    string               `json:"run_id,omitempty"`
	Stats    *models.SummaryStats `json:"stats,omitempty"`
	Error    string               `json:"error,omitempty"`
	LoadTime time.Time            `json:"load_time"`
}

// Event types
const (
	TypeRefreshed   = "refreshed"
	TypeInvalidated = "invalidated"
)

// RefreshedEvent describes a newly stored result
func RefreshedEvent(r *models.LoadResult) Event {
	stats := r.Stats
	return Event{Type: TypeRefreshed, RunID: r.RunID, Stats: &stats, Error: r.Error, LoadTime: r.LoadTime}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 5 * time.Second

// Hub tracks connected clients and fans events out to them
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 16),
		done:      make(chan struct{}),
	}
}

// Run delivers broadcasts until Close is called
func (h *Hub) Run() {
	for {
		select {
		case ev := <-h.broadcast:
			h.deliver(ev)
		case <-h.done:
			h.clientsMux.Lock()
			for c := range h.clients {
				c.Close()
				delete(h.clients, c)
			}
			h.clientsMux.Unlock()
			metrics.WebsocketClients.Set(0)
			return
		}
	}
}

func (h *Hub) deliver(ev Event) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(ev); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
	metrics.WebsocketClients.Set(float64(len(h.clients)))
}

// Broadcast queues an event. It drops the event rather than block when
// the queue is full.
func (h *Hub) Broadcast(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		logging.Component("Events").Warnf("Broadcast queue full, dropping %s event", ev.Type)
	}
}

// Close stops Run and disconnects every client
func (h *Hub) Close() {
	close(h.done)
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Component("Events").Warnf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			metrics.WebsocketClients.Set(float64(len(h.clients)))
			h.clientsMux.Unlock()
			break
		}
	}
}
