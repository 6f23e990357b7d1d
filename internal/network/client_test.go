package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
)

// echoServer answers every message with an info message naming its type.
func echoServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			env, err := packets.Decode(data)
			if err != nil {
				return
			}
			reply, _ := packets.Encode(packets.TypeInfo, packets.Info{PartID: env.Type})
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSendWithoutConnection(t *testing.T) {
	c := New()
	if c.IsConnected() {
		t.Fatal("new client should not be connected")
	}
	if err := c.SendPointer(0, 0); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
	if err := c.Process(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected from Process, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	url := echoServer(t)

	c := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Connect(ctx, url); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Disconnect()

	if err := c.Connect(ctx, url); err == nil {
		t.Error("expected error connecting twice")
	}

	var got []string
	c.RegisterHandler(packets.TypeInfo, func(payload json.RawMessage) error {
		var info packets.Info
		if err := json.Unmarshal(payload, &info); err != nil {
			return err
		}
		got = append(got, info.PartID)
		return nil
	})

	if err := c.SendPointer(0.1, 0.2); err != nil {
		t.Fatalf("send pointer: %v", err)
	}
	if err := c.SendControl(packets.FieldExplode, 0.5); err != nil {
		t.Fatalf("send control: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := c.Process(); err != nil {
			t.Fatalf("process: %v", err)
		}
	}

	want := []string{packets.TypePointer, packets.TypeControl}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got replies %v, want %v", got, want)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	url := echoServer(t)

	c := New()
	if err := c.Connect(context.Background(), url); err != nil {
		t.Fatalf("connect: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if c.IsConnected() {
		t.Error("client still connected after Run returned")
	}
}
