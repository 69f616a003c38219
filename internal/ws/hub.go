package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/launchdash/launchdash/internal/dashboard"
	"github.com/launchdash/launchdash/internal/launches"
	"github.com/launchdash/launchdash/internal/metrics"
	"github.com/launchdash/launchdash/internal/store"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16

	// maxMessageSize bounds one selection message from a client.
	maxMessageSize = 4096
)

// Event names.
const (
	EventControls = "controls"
	EventCharts   = "charts"
	EventError    = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// Allow all origins — callers should apply CORS at the reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// SelectionMessage is a control change sent by a client.
type SelectionMessage struct {
	Site    string      `json:"site"`
	Payload *[2]float64 `json:"payload,omitempty"`
}

// selection resolves missing fields against t.
func (m SelectionMessage) selection(t *launches.Table) dashboard.Selection {
	sel := dashboard.DefaultSelection(t)
	if m.Site != "" {
		sel.Site = m.Site
	}
	if m.Payload != nil {
		sel.Low, sel.High = m.Payload[0], m.Payload[1]
	}
	return sel
}

type errorData struct {
	Error string `json:"error"`
}

// Hub manages session clients and answers their selections with chart specs.
type Hub struct {
	store   *store.Store
	metrics *metrics.Metrics
	updates <-chan *store.Snapshot

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected WebSocket client.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a Hub serving charts from st. m may be nil.
func New(st *store.Store, m *metrics.Metrics) *Hub {
	return &Hub{
		store:   st,
		metrics: m,
		updates: st.Subscribe(),
		clients: make(map[*client]struct{}),
	}
}

// Run pushes fresh controls and default charts to every client after each
// dataset reload. Run blocks until ctx is cancelled, then closes all active
// connections.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case snap := <-h.updates:
			h.broadcastReset(snap.Table)
		}
	}
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the client.
// It sends the controls and the default charts immediately, then answers
// each selection message. Blocks until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
	h.register(c)
	defer h.unregister(c)

	t := h.store.Table()
	for _, msg := range h.resetMessages(t) {
		h.deliver(c, msg)
	}

	go c.writePump()
	h.readPump(c) // blocks until connection closes
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.SessionOpened()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		h.metrics.SessionClosed()
	}
}

// deliver queues data for c. A client whose buffer is full is disconnected.
func (h *Hub) deliver(c *client, data []byte) {
	if data == nil {
		return
	}
	h.mu.RLock()
	_, ok := h.clients[c]
	if ok {
		select {
		case c.send <- data:
		default:
			ok = false
		}
	}
	h.mu.RUnlock()
	if !ok {
		h.unregister(c)
	}
}

func (h *Hub) broadcastReset(t *launches.Table) {
	msgs := h.resetMessages(t)

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		for _, m := range msgs {
			h.deliver(c, m)
		}
	}
	slog.Debug("ws: pushed reloaded dataset", "clients", len(targets), "rows", t.Len())
}

// resetMessages builds the controls and default-selection charts for t.
func (h *Hub) resetMessages(t *launches.Table) [][]byte {
	return [][]byte{
		encode(EventControls, dashboard.NewControls(t)),
		h.answer(t, SelectionMessage{}),
	}
}

// answer runs both reducers for one selection and encodes the reply.
func (h *Hub) answer(t *launches.Table, m SelectionMessage) []byte {
	sel := m.selection(t)

	pie, err := dashboard.Pie(t, sel.Site)
	h.metrics.ObserveReducer(dashboard.KindPie, err)
	if err != nil {
		return h.errorMessage(err)
	}
	scatter, err := dashboard.Scatter(t, sel)
	h.metrics.ObserveReducer(dashboard.KindScatter, err)
	if err != nil {
		return h.errorMessage(err)
	}
	return encode(EventCharts, dashboard.Charts{Pie: pie, Scatter: scatter})
}

func (h *Hub) errorMessage(err error) []byte {
	if !errors.Is(err, dashboard.ErrInvalidSelection) {
		slog.Error("ws: reducer failed", "err", err)
	}
	return encode(EventError, errorData{Error: err.Error()})
}

func encode(event string, data interface{}) []byte {
	b, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		slog.Error("ws: encode message", "event", event, "err", err)
		return nil
	}
	return b
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	n := len(h.clients)
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()
	for i := 0; i < n; i++ {
		h.metrics.SessionClosed()
	}
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads selection messages in order and queues one reply for each.
// Blocks until the connection closes.
func (h *Hub) readPump(c *client) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var m SelectionMessage
		if err := json.Unmarshal(data, &m); err != nil {
			h.deliver(c, encode(EventError, errorData{Error: "malformed selection: " + err.Error()}))
			continue
		}
		h.deliver(c, h.answer(h.store.Table(), m))
	}
}
