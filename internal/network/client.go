// Package network is the client side of the bridge: it connects to a
// viewer over WebSocket, sends input and dispatches server messages.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
)

// ErrNotConnected is returned when sending without a connection.
var ErrNotConnected = errors.New("not connected")

// MessageHandler handles the payload of one server message type.
type MessageHandler func(payload json.RawMessage) error

// Client handles bridge communication.
type Client struct {
	conn     *websocket.Conn
	mu       sync.Mutex // guards conn and connected, serializes writes
	handlers map[string]MessageHandler

	connected bool
}

// New creates a new bridge client.
func New() *Client {
	return &Client{
		handlers: make(map[string]MessageHandler),
	}
}

// Connect dials the bridge WebSocket endpoint, e.g. ws://localhost:8080/ws.
func (c *Client) Connect(ctx context.Context, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return fmt.Errorf("already connected")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}

	c.conn = conn
	c.connected = true
	return nil
}

// Disconnect closes the connection.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

// IsConnected returns connection status.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// RegisterHandler registers a handler for a server message type. Register
// before calling Process or Run.
func (c *Client) RegisterHandler(msgType string, handler MessageHandler) {
	c.handlers[msgType] = handler
}

// Send sends a message to the server.
func (c *Client) Send(msgType string, payload any) error {
	data, err := packets.Encode(msgType, payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// SendPointer reports a click at normalized device coordinates.
func (c *Client) SendPointer(x, y float32) error {
	return c.Send(packets.TypePointer, packets.Pointer{X: x, Y: y})
}

// SendControl sets one view state field.
func (c *Client) SendControl(field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s value: %w", field, err)
	}
	return c.Send(packets.TypeControl, packets.Control{Field: field, Value: raw})
}

// Process reads one message and dispatches it to its handler. Messages
// without a handler are skipped. It blocks until a message arrives.
func (c *Client) Process() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("reading message: %w", err)
	}

	env, err := packets.Decode(data)
	if err != nil {
		return err
	}
	if h, ok := c.handlers[env.Type]; ok {
		if err := h(env.Payload); err != nil {
			return fmt.Errorf("handling %s: %w", env.Type, err)
		}
	}
	return nil
}

// Run processes messages until the context is done or the connection
// fails.
func (c *Client) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.Disconnect()
		case <-done:
		}
	}()

	for {
		if err := c.Process(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}
