package ws

import (
	"PerfDash/entity"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
)

const (
	EventPerformanceUpdated = "performance_updated"

	clientRefresh = "refresh"
)

// ClientMessageHandler handles requests sent by dashboard clients.
type ClientMessageHandler interface {
	RequestRefresh(ctx context.Context, username string) error
}

// Event represents a WebSocket event sent to dashboard clients.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	handler    ClientMessageHandler
	log        *slog.Logger

	// ctx is the Run context; client requests are bound to it
	ctx        context.Context
	refreshing atomic.Bool
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
		ctx:        context.Background(),
	}
}

func (h *Hub) SetHandler(handler ClientMessageHandler) {
	h.handler = handler
}

// Run starts the hub's event loop until ctx is done. Should be called in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastPerformance announces a new snapshot. The event is dropped when
// the broadcast queue is full.
func (h *Hub) BroadcastPerformance(run *entity.PerformanceRun) {
	event := &Event{
		Type: EventPerformanceUpdated,
		Data: run,
	}
	select {
	case h.broadcast <- event:
	default:
		if h.log != nil {
			h.log.Warn("websocket broadcast queue full", slog.String("event", event.Type))
		}
	}
}

// clientEvent represents an incoming WebSocket message from a dashboard client.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming message from a client.
func (h *Hub) HandleClientMessage(username string, raw []byte) {
	if h.handler == nil {
		return
	}

	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		if h.log != nil {
			h.log.Warn("failed to parse client ws message", slog.String("error", err.Error()))
		}
		return
	}

	switch event.Type {
	case clientRefresh:
		h.requestRefresh(username)
	}
}

// requestRefresh runs the refresh off the client's read loop. Requests that
// arrive while one is running are dropped.
func (h *Hub) requestRefresh(username string) {
	if !h.refreshing.CompareAndSwap(false, true) {
		if h.log != nil {
			h.log.Debug("refresh already running", slog.String("username", username))
		}
		return
	}

	h.mu.RLock()
	ctx := h.ctx
	h.mu.RUnlock()

	go func() {
		defer h.refreshing.Store(false)
		if err := h.handler.RequestRefresh(ctx, username); err != nil && h.log != nil {
			h.log.Error("failed to handle refresh request",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
	}()
}
