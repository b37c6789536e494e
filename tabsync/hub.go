// Package tabsync replaces the browser's storage-event trick: when one tab
// changes the cart or wishlist, every other tab of the same session gets a
// websocket nudge telling it to re-fetch. Eventual consistency only; the
// store's row locks are what keep concurrent writes from losing data.
package tabsync

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is what subscribed tabs receive after a mutation.
type Event struct {
	Kind      string `json:"kind"` // "cart" or "wishlist"
	SessionID string `json:"session_id"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks the open tabs of each session. Each connection carries its own
// write mutex: gorilla/websocket allows at most one concurrent writer, and
// two mutations of the same session's cart can broadcast at the same time.
type Hub struct {
	mu   sync.Mutex
	tabs map[string]map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{tabs: make(map[string]map[*websocket.Conn]*sync.Mutex)}
}

// Subscribe upgrades the request and parks the connection until the tab
// closes it. Blocks for the connection's lifetime.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	if h.tabs[sessionID] == nil {
		h.tabs[sessionID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	h.tabs[sessionID][conn] = &sync.Mutex{}
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.tabs[sessionID], conn)
	if len(h.tabs[sessionID]) == 0 {
		delete(h.tabs, sessionID)
	}
	h.mu.Unlock()
}

// Broadcast tells every tab of the session that kind changed.
func (h *Hub) Broadcast(sessionID, kind string) {
	data, err := json.Marshal(Event{Kind: kind, SessionID: sessionID})
	if err != nil {
		return
	}

	type target struct {
		conn *websocket.Conn
		wmu  *sync.Mutex
	}

	h.mu.Lock()
	targets := make([]target, 0, len(h.tabs[sessionID]))
	for conn, wmu := range h.tabs[sessionID] {
		targets = append(targets, target{conn: conn, wmu: wmu})
	}
	h.mu.Unlock()

	for _, t := range targets {
		t.wmu.Lock()
		err := t.conn.WriteMessage(websocket.TextMessage, data)
		t.wmu.Unlock()
		if err != nil {
			log.Printf("⚠️ tabsync write failed: %v", err)
		}
	}
}

// TabCount reports how many tabs a session has open.
func (h *Hub) TabCount(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tabs[sessionID])
}
