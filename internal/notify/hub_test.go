package notify

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jaiwin14/JobnexusAI/internal/config"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
)

func testWSConfig() *config.WebSocketConfig {
	return &config.WebSocketConfig{
		WriteTimeout:    2 * time.Second,
		PingInterval:    30 * time.Second,
		SendBufferSize:  4,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

func testLogger() *apperrors.Logger {
	return apperrors.NewLogger(slog.LevelError)
}

// dialTestHub spins up a server around the hub and returns a connected client
// plus the connection ID the hub assigned.
func dialTestHub(t *testing.T, hub *Hub, apiKey string) (*websocket.Conn, string) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleConnection(w, r, apiKey)
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	var hello Message
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := client.ReadJSON(&hello); err != nil {
		t.Fatalf("reading connection frame: %v", err)
	}
	if hello.Type != "connected" || hello.ConnectionID == "" {
		t.Fatalf("first frame = %+v, want connected frame with ID", hello)
	}
	return client, hello.ConnectionID
}

func TestHubPublish(t *testing.T) {
	hub := NewHub(testWSConfig(), testLogger())
	defer hub.Close()

	client, connID := dialTestHub(t, hub, "key-a")

	if err := hub.Publish(connID, "key-a", Message{Type: TypeStepUpdate, Step: "skills", Status: "processing"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	var got Message
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := client.ReadJSON(&got); err != nil {
		t.Fatalf("reading step update: %v", err)
	}
	if got.Type != TypeStepUpdate || got.Step != "skills" || got.Status != "processing" {
		t.Errorf("frame = %+v", got)
	}
}

func TestHubRefusesCrossKeyPublish(t *testing.T) {
	hub := NewHub(testWSConfig(), testLogger())
	defer hub.Close()

	_, connID := dialTestHub(t, hub, "key-a")

	err := hub.Publish(connID, "key-b", Message{Type: TypeStepUpdate, Step: "skills"})
	if err == nil {
		t.Fatal("Publish() with the wrong key succeeded, want refusal")
	}

	if !hub.Has(connID, "key-a") {
		t.Error("connection no longer registered under its own key")
	}
	if hub.Has(connID, "key-b") {
		t.Error("Has() reports ownership for the wrong key")
	}
}

func TestHubUnknownConnection(t *testing.T) {
	hub := NewHub(testWSConfig(), testLogger())
	defer hub.Close()

	if err := hub.Publish("no-such-id", "key-a", Message{Type: TypeStepUpdate}); err == nil {
		t.Fatal("Publish() to unknown connection succeeded, want error")
	}
}

func TestHubOriginCheck(t *testing.T) {
	cfg := testWSConfig()
	cfg.AllowedOrigins = []string{"https://app.example.com"}
	hub := NewHub(cfg, testLogger())
	defer hub.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleConnection(w, r, "key-a")
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	t.Run("disallowed origin rejected", func(t *testing.T) {
		header := http.Header{"Origin": []string{"https://evil.example.com"}}
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
		if err == nil {
			_ = conn.Close()
			t.Fatal("dial succeeded from disallowed origin")
		}
		if resp != nil && resp.StatusCode != http.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("allowed origin accepted", func(t *testing.T) {
		header := http.Header{"Origin": []string{"https://app.example.com"}}
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
		if err != nil {
			t.Fatalf("dial failed from allowed origin: %v", err)
		}
		_ = conn.Close()
	})
}

func TestHubConnectionLifecycle(t *testing.T) {
	hub := NewHub(testWSConfig(), testLogger())
	defer hub.Close()

	client, connID := dialTestHub(t, hub, "key-a")

	if hub.ConnectionCount() != 1 {
		t.Fatalf("ConnectionCount() = %d, want 1", hub.ConnectionCount())
	}

	_ = client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Has(connID, "key-a") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Has(connID, "key-a") {
		t.Error("connection still registered after client close")
	}
}
