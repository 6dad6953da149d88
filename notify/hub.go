package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"golf-atlas/models"
	"golf-atlas/services"
	"golf-atlas/utils"
)

// Event types pushed to subscribers.
const (
	EventSnapshotLoaded = "snapshot.loaded"
	EventSnapshotFailed = "snapshot.failed"
)

// Event is the JSON message broadcast to every websocket client.
type Event struct {
	Type       string            `json:"type"`
	Source     string            `json:"source"`
	SnapshotID string            `json:"snapshot_id,omitempty"`
	LoadedAt   *time.Time        `json:"loaded_at,omitempty"`
	Stats      *models.LoadStats `json:"stats,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// Hub tracks connected websocket clients and broadcasts load events to them.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *utils.Logger
}

// Stats reports the number of connected clients.
type Stats struct {
	WSClients int `json:"ws_clients"`
}

func NewHub(logger *utils.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Add(ws *websocket.Conn) {
	h.mu.Lock()
	h.clients[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Send writes one message to ws. Every write goes through the hub lock
// because a websocket connection allows a single writer at a time.
func (h *Hub) Send(ws *websocket.Conn, msg []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
	return ws.WriteMessage(websocket.TextMessage, msg)
}

// BroadcastJSON sends v to every client. Clients that fail the write are dropped.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.logger.Warn("[ws] Could not encode event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for ws := range h.clients {
		_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.clients, ws)
		}
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{WSClients: len(h.clients)}
}

// SnapshotLoaded broadcasts a snapshot.loaded event.
func (h *Hub) SnapshotLoaded(snap *models.Snapshot) {
	loadedAt := snap.LoadedAt
	stats := snap.Stats
	h.BroadcastJSON(Event{
		Type:       EventSnapshotLoaded,
		Source:     snap.Source,
		SnapshotID: snap.ID,
		LoadedAt:   &loadedAt,
		Stats:      &stats,
	})
}

// SnapshotFailed broadcasts a snapshot.failed event carrying the user-facing message.
func (h *Hub) SnapshotFailed(src string, err error) {
	h.BroadcastJSON(Event{
		Type:    EventSnapshotFailed,
		Source:  src,
		Message: services.UserMessage(err),
	})
}
