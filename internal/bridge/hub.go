// Package bridge is the boundary between the frame loop and external
// renderers. It streams scene and frame messages over WebSocket, decodes
// pointer, control and camera input into events, and serves the part
// catalog over HTTP.
package bridge

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/config"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/logger"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	eventBuffer = 64
)

// Hub tracks connected renderers. Outbound messages are encoded once and
// queued per client; a client whose queue is full misses that message.
type Hub struct {
	log       *zap.Logger
	upgrader  websocket.Upgrader
	queue     int
	readLimit int64
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	clients  map[*client]struct{}
	retained map[string][]byte
	order    []string // retained types in first-retain order
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// NewHub creates a hub using the server section of the config.
func NewHub(cfg config.ServerConfig) *Hub {
	h := &Hub{
		log:       logger.Named("bridge"),
		queue:     cfg.SendQueue,
		readLimit: cfg.ReadLimit,
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
		clients:   make(map[*client]struct{}),
		retained:  make(map[string][]byte),
	}
	if h.queue < 1 {
		h.queue = 1
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(cfg.AllowedOrigins)}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// Events delivers decoded client input to the frame loop.
func (h *Hub) Events() <-chan Event {
	return h.events
}

// ClientCount returns the number of connected renderers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Retain broadcasts a message and keeps it to replay to clients that
// connect later. A newer message of the same type replaces the old one.
func (h *Hub) Retain(msgType string, payload any) (int, error) {
	data, err := packets.Encode(msgType, payload)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.retained[msgType]; !ok {
		h.order = append(h.order, msgType)
	}
	h.retained[msgType] = data
	return h.broadcastLocked(data), nil
}

// Broadcast queues a message for every client and returns how many
// clients dropped it.
func (h *Hub) Broadcast(msgType string, payload any) (int, error) {
	data, err := packets.Encode(msgType, payload)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.broadcastLocked(data), nil
}

func (h *Hub) broadcastLocked(data []byte) int {
	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			dropped++
		}
	}
	return dropped
}

// ServeHTTP upgrades the request and runs the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, h.queue+len(h.order)),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		c.close()
		return
	default:
	}
	for _, t := range h.order {
		c.send <- h.retained[t]
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.log.Info("client connected",
		zap.String("remote", r.RemoteAddr),
		zap.Int("clients", h.ClientCount()))

	go h.writePump(c)
	h.readPump(c)

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()

	h.log.Info("client disconnected", zap.String("remote", r.RemoteAddr))
}

func (h *Hub) readPump(c *client) {
	if h.readLimit > 0 {
		c.conn.SetReadLimit(h.readLimit)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("read failed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			h.log.Debug("ignoring non-text message", zap.Int("type", msgType))
			continue
		}

		env, err := packets.Decode(data)
		if err != nil {
			h.log.Debug("ignoring malformed message", zap.Error(err))
			continue
		}
		ev, err := DecodeEvent(env)
		if err != nil {
			h.log.Debug("ignoring invalid message", zap.String("type", env.Type), zap.Error(err))
			continue
		}

		select {
		case h.events <- ev:
		case <-c.done:
			return
		case <-h.done:
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.log.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		close(h.done)
		for c := range h.clients {
			c.close()
		}
		h.mu.Unlock()
	})
}
