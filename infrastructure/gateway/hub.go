// Package gateway serves the websocket namespaces and implements the
// Broadcaster used by the coordinators.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"room-lab/domain"
	"room-lab/domain/event"
	"room-lab/observability"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler receives inbound client events. Calls for a given connection
// are made from a single goroutine, in arrival order.
type Handler interface {
	Connect(ctx context.Context, connID domain.ConnectionID)
	Handle(ctx context.Context, connID domain.ConnectionID, name string, data json.RawMessage)
	Disconnect(ctx context.Context, connID domain.ConnectionID)
}

type Config struct {
	Namespace      string
	SendBuffer     int
	MaxMessageSize int64
	AllowedOrigins []string
}

// Envelope is the wire format of every frame, in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event event.Type `json:"event"`
	Data  any        `json:"data"`
}

// Hub holds the connections of one namespace and their room subscriptions.
// Emits never block: a client whose buffer is full is disconnected.
type Hub struct {
	log        *slog.Logger
	mu         sync.RWMutex
	clients    map[domain.ConnectionID]*Client
	rooms      map[domain.RoomID]map[domain.ConnectionID]struct{}
	handler    Handler
	monitoring *observability.MonitoringManager
	upgrader   websocket.Upgrader
	cfg        Config
}

func NewHub(log *slog.Logger, monitoring *observability.MonitoringManager, cfg Config) *Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 256
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 64 * 1024
	}
	h := &Hub{
		log:        log.With("namespace", cfg.Namespace),
		clients:    make(map[domain.ConnectionID]*Client),
		rooms:      make(map[domain.RoomID]map[domain.ConnectionID]struct{}),
		monitoring: monitoring,
		cfg:        cfg,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// SetHandler must be called before serving. The handler usually needs the
// hub as its broadcaster, hence the two-step wiring.
func (h *Hub) SetHandler(handler Handler) {
	h.handler = handler
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// ServeHTTP upgrades the request and blocks until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("Upgrade failed", "err", err)
		return
	}
	client := newClient(h, conn, domain.ConnectionID(uuid.NewString()))
	h.register(client)
	h.monitoring.ConnectionOpened()
	h.log.Debug("Client connected", "conn", client.id, "remote", conn.RemoteAddr().String())

	go client.writePump()

	ctx := r.Context()
	h.handler.Connect(ctx, client.id)
	client.readPump(ctx)

	h.handler.Disconnect(context.WithoutCancel(ctx), client.id)
	h.unregister(client)
	h.monitoring.ConnectionClosed()
	h.log.Debug("Client disconnected", "conn", client.id)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
	for roomID, members := range h.rooms {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	c.close()
}

func (h *Hub) Subscribe(connID domain.ConnectionID, roomID domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[connID]; !ok {
		return
	}
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[domain.ConnectionID]struct{})
		h.rooms[roomID] = members
	}
	members[connID] = struct{}{}
}

func (h *Hub) Unsubscribe(connID domain.ConnectionID, roomID domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) encode(evt event.Event) ([]byte, bool) {
	bytes, err := json.Marshal(outbound{Event: evt.Type, Data: evt.Payload})
	if err != nil {
		h.log.Error("Failed to encode event", "event", evt.Type, "err", err)
		return nil, false
	}
	return bytes, true
}

func (h *Hub) EmitToRoom(roomID domain.RoomID, evt event.Event) {
	bytes, ok := h.encode(evt)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for connID := range h.rooms[roomID] {
		if c, ok := h.clients[connID]; ok {
			h.deliver(c, bytes)
		}
	}
}

func (h *Hub) EmitToAll(evt event.Event) {
	bytes, ok := h.encode(evt)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		h.deliver(c, bytes)
	}
}

func (h *Hub) EmitToClient(connID domain.ConnectionID, evt event.Event) {
	bytes, ok := h.encode(evt)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[connID]; ok {
		h.deliver(c, bytes)
	}
}

func (h *Hub) deliver(c *Client, bytes []byte) {
	if c.enqueue(bytes) {
		h.monitoring.IncrEventsSent()
		return
	}
	h.monitoring.IncrEventsDropped()
	h.log.Warn("Client buffer full, disconnecting", "conn", c.id)
	c.close()
}

// Len returns the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown closes every connection. Hijacked connections are not
// closed by http.Server.Shutdown.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(time.Second))
		c.close()
	}
}
