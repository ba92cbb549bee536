package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"stock-and-swipe/server/logging"
)

func newTestHub(t *testing.T) (*Hub, *World) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 81
	w, err := NewWorld(cfg, logging.NopPublisher())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return NewHub(w), w
}

func TestHandleClientMessageDrivesInput(t *testing.T) {
	hub, w := newTestHub(t)

	hub.handleClientMessage(ClientMessage{Type: messageTypeKey, Key: string(KeyForward), Pressed: true})
	if !w.input.keys[KeyForward] {
		t.Fatalf("expected forward key pressed")
	}

	hub.handleClientMessage(ClientMessage{Type: messageTypeKey, Key: string(KeyForward), Pressed: false})
	if w.input.keys[KeyForward] {
		t.Fatalf("expected forward key released")
	}

	hub.handleClientMessage(ClientMessage{Type: messageTypeInteract})
	if !w.input.interact {
		t.Fatalf("expected interact latched")
	}

	hub.handleClientMessage(ClientMessage{Type: messageTypeCamera, Heading: 2.5})
	if hub.cameraHeading != 2.5 {
		t.Fatalf("expected camera heading stored, got %v", hub.cameraHeading)
	}
}

func TestDiagnosticsSnapshotReflectsWorld(t *testing.T) {
	hub, w := newTestHub(t)
	stepTicks(w, 5)

	diag := hub.DiagnosticsSnapshot()
	if diag.Tick != 5 {
		t.Fatalf("expected tick 5, got %d", diag.Tick)
	}
	if diag.ThiefState != "waiting" {
		t.Fatalf("expected waiting thief, got %q", diag.ThiefState)
	}
	if diag.TickRate != w.Config().TickRate {
		t.Fatalf("expected tick rate %d, got %d", w.Config().TickRate, diag.TickRate)
	}
	if diag.Subscribers != 0 {
		t.Fatalf("expected no subscribers, got %d", diag.Subscribers)
	}
}

func TestServeWSSendsInitialState(t *testing.T) {
	hub, _ := newTestHub(t)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read initial state: %v", err)
	}
	var msg StateMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("decode initial state: %v", err)
	}
	if msg.Type != messageTypeState {
		t.Fatalf("expected state message, got %q", msg.Type)
	}
	if msg.Protocol != ProtocolVersion {
		t.Fatalf("expected protocol %d, got %d", ProtocolVersion, msg.Protocol)
	}
	if len(msg.Snapshot.Items) == 0 {
		t.Fatalf("expected seeded items in the initial snapshot")
	}
}
