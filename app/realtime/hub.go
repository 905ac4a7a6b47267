// Package realtime keeps every open websocket of a user in sync. A client
// authenticates with its bearer token, can ask for a snapshot of its cart,
// wishlist and profile, and relays update frames to the user's other sessions.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/metrics"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

const (
	FrameAuth        = "auth"
	FrameSyncRequest = "sync_request"
	FrameUpdate      = "update"

	FrameAuthOK   = "AUTH_OK"
	FrameSyncData = "SYNC_DATA"
	FrameError    = "ERROR"
)

type TokenValidator interface {
	Validate(token string) (*helpers.Claims, error)
}

type SnapshotProvider interface {
	Snapshot(ctx context.Context, userID string) (*services.SyncSnapshot, error)
}

type inboundFrame struct {
	Type    string          `json:"type"`
	UserID  string          `json:"userId"`
	Token   string          `json:"token"`
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

type outboundFrame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Message string      `json:"message,omitempty"`
}

type delivery struct {
	from *Client
	data []byte
}

// Hub tracks authenticated connections per user id. Run must be started
// before connections are served.
type Hub struct {
	tokens    TokenValidator
	snapshots SnapshotProvider
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	users   map[string]map[*Client]bool
	stopped bool

	unregister chan *Client
	fanout     chan delivery
	done       chan struct{}
}

func NewHub(tokens TokenValidator, snapshots SnapshotProvider) *Hub {
	return &Hub{
		tokens:    tokens,
		snapshots: snapshots,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		users:      make(map[string]map[*Client]bool),
		unregister: make(chan *Client),
		fanout:     make(chan delivery, 256),
		done:       make(chan struct{}),
	}
}

// SetCheckOrigin replaces the default allow-all origin check.
func (h *Hub) SetCheckOrigin(fn func(r *http.Request) bool) {
	h.upgrader.CheckOrigin = fn
}

// Run serves unregistration and fan-out until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.unregister:
			h.mu.Lock()
			set := h.users[c.userID]
			if _, ok := set[c]; ok {
				delete(set, c)
				c.closeSend()
				metrics.WSConnections.Dec()
				if len(set) == 0 {
					delete(h.users, c.userID)
				}
			}
			remaining := len(set)
			h.mu.Unlock()
			logger.Info("Hub.Run: client disconnected", "user_id", c.userID, "connections", remaining)

		case d := <-h.fanout:
			h.mu.RLock()
			for peer := range h.users[d.from.userID] {
				if peer != d.from {
					peer.enqueue(d.data)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for userID, set := range h.users {
		for c := range set {
			c.closeSend()
			metrics.WSConnections.Dec()
		}
		delete(h.users, userID)
	}
}

// Connections returns how many sockets are registered for userID.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

// ServeHTTP upgrades the request and starts the connection's pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Hub.ServeHTTP: upgrade failed", "error", err)
		return
	}
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	go c.writePump()
	go c.readPump()
}

// add registers an authenticated client. It is synchronous so the client is
// visible to fan-out before AUTH_OK is sent.
func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return false
	}
	set, ok := h.users[c.userID]
	if !ok {
		set = make(map[*Client]bool)
		h.users[c.userID] = set
	}
	set[c] = true
	total := len(set)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logger.Info("Hub.add: client connected", "user_id", c.userID, "connections", total)
	return true
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) relay(from *Client, data []byte) {
	select {
	case h.fanout <- delivery{from: from, data: data}:
	case <-h.done:
	}
}
