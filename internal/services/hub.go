package services

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"seopages-backend-go/internal/models"
)

// ViewHub fans page-view events out to connected dashboard websockets.
// Broadcast never blocks: if the channel is full the event is dropped,
// the durable record already lives in the store.
type ViewHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan models.PageView
}

func NewViewHub() *ViewHub {
	return &ViewHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan models.PageView, 64),
	}
}

func (h *ViewHub) Run(ctx context.Context) {
	for {
		select {
		case view := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteJSON(view)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *ViewHub) Broadcast(view models.PageView) {
	select {
	case h.ch <- view:
	default:
	}
}

func (h *ViewHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *ViewHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
