package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paymentapi/config"
	"paymentapi/internal/auth"
	"paymentapi/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap/zaptest"
)

func TestHubPublishAndClose(t *testing.T) {
	hub := NewHub()
	c := hub.NewClient()
	if hub.ClientCount() != 1 {
		t.Fatalf("Expected 1 client, got %d", hub.ClientCount())
	}

	ev := domain.StatusEvent{Record: domain.RecordPayment, TransactionID: 1, Status: domain.StatusCompleted, Paid: true}
	if err := hub.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	select {
	case msg := <-c.Send:
		if !strings.Contains(string(msg), `"status":"COMPLETED"`) {
			t.Errorf("Unexpected message %s", msg)
		}
	default:
		t.Fatal("Expected a queued message")
	}

	c.Close()
	c.Close()
	if hub.ClientCount() != 0 {
		t.Errorf("Expected client to be unregistered, got %d", hub.ClientCount())
	}
	if err := hub.Publish(context.Background(), ev); err != nil {
		t.Errorf("Publish after close failed: %v", err)
	}
}

func TestHubDropsForSlowClients(t *testing.T) {
	hub := NewHub()
	c := hub.NewClient()
	defer c.Close()
	for i := 0; i < cap(c.Send)+10; i++ {
		if err := hub.Publish(context.Background(), domain.StatusEvent{TransactionID: uint(i)}); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}
	if len(c.Send) != cap(c.Send) {
		t.Errorf("Expected full queue, got %d", len(c.Send))
	}
}

func newFeedServer(t *testing.T, cfg *config.JWTConfig, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/payments", ServeStatusFeed(cfg, hub, zaptest.NewLogger(t)))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %d clients", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStatusFeedStreamsEvents(t *testing.T) {
	hub := NewHub()
	srv := newFeedServer(t, &config.JWTConfig{}, hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/payments"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Publish(context.Background(), domain.StatusEvent{Record: domain.RecordPayment, TransactionID: 5, Status: domain.StatusFailed})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	var msg struct {
		Type  string             `json:"type"`
		Event domain.StatusEvent `json:"event"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Invalid message: %v", err)
	}
	if msg.Type != "status" || msg.Event.TransactionID != 5 || msg.Event.Status != domain.StatusFailed {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestStatusFeedRequiresToken(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "feed-secret", Issuer: "test", Expiry: time.Minute}
	hub := NewHub()
	srv := newFeedServer(t, cfg, hub)
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/payments"

	if _, resp, err := websocket.DefaultDialer.Dial(base, nil); err == nil {
		t.Fatal("Expected dial without token to fail")
	} else if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("Expected 401, got %v", resp)
	}

	token, err := auth.GenerateToken(cfg, "ops")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	conn, _, err := websocket.DefaultDialer.Dial(base+"?token="+token, nil)
	if err != nil {
		t.Fatalf("Dial with token failed: %v", err)
	}
	conn.Close()
}
