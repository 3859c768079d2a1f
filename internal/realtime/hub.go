package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is consumed from the mobile wrapper and arbitrary conference
	// wifi networks, so origins are not restricted here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub is the in-process delivery path: a set of WebSocket clients and a
// broadcast channel fanning frames out to all of them.  Register,
// unregister and broadcast all funnel through Run's select loop, so the
// client set needs no locking beyond the count snapshot.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub constructs an empty hub.  Run must be started before clients
// connect.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		clients:    make(map[*Client]bool),
	}
}

// Run owns the client set.  It loops until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			log.Info().Str("client_id", c.id).Int("clients", h.ClientCount()).Msg("socket client connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			log.Info().Str("client_id", c.id).Int("clients", h.ClientCount()).Msg("socket client disconnected")

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer: drop it rather than block the fan-out.
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Emit implements Broadcaster.  The envelope is marshalled once and queued;
// when the broadcast buffer is full the frame is dropped (at-most-once, no
// backpressure).
func (h *Hub) Emit(event string, data any) {
	b, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("socket emit: marshal failed")
		return
	}
	select {
	case h.broadcast <- b:
	default:
		log.Warn().Str("event", event).Msg("socket emit: broadcast buffer full, frame dropped")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades an HTTP request to a WebSocket connection and attaches
// it to the hub.
func (h *Hub) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("socket upgrade failed")
		return err
	}
	client := newClient(h, conn)
	h.register <- client
	go client.writePump()
	go client.readPump()
	return nil
}
