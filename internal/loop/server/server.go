// Package server tracks connected players across hosts. Every connection runs
// its own game; the hub only knows who is connected, keeps the shared
// leaderboard and tells everyone when the process is going down.
package server

import (
	"sync"
	"time"
)

// ClientHandle represents a client's registration with the hub.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to client (shutdown, leaderboard)
}

// ClientEvent represents an event sent from hub to client.
type ClientEvent struct {
	Type ClientEventType
	Rank int // For EventNewBest: 1-based leaderboard position
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventNewBest
)

// Hub is the registry shared by every connection of one process.
type Hub struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	board        *Leaderboard
}

// NewHub creates an empty hub whose leaderboard keeps the best size entries.
func NewHub(size int) *Hub {
	return &Hub{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		board:        NewLeaderboard(size),
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (h *Hub) RegisterClient(username string) *ClientHandle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &ClientHandle{
		ID:       h.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	h.nextClientID++
	h.clients[handle.ID] = handle
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown IDs are ignored.
func (h *Hub) UnregisterClient(clientID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.clients[clientID]; ok {
		close(handle.EventsCh)
		delete(h.clients, clientID)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ReportScore records a finished game. The client is told its rank when the
// score made the leaderboard.
func (h *Hub) ReportScore(clientID int, score int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle, ok := h.clients[clientID]
	if !ok {
		return
	}
	rank := h.board.Add(handle.Username, clientID, score)
	if rank == 0 {
		return
	}
	select {
	case handle.EventsCh <- ClientEvent{Type: EventNewBest, Rank: rank}:
	default:
	}
}

// TopScores returns a copy of the leaderboard, best first.
func (h *Hub) TopScores() []TopScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.board.Entries()
}

// Shutdown gracefully shuts down by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (h *Hub) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
