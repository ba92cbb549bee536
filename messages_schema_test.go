package server

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.Compile(filepath.Join("schemas", name))
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return s
}

func asInstance(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return instance
}

func TestStateMessageMatchesSchema(t *testing.T) {
	schema := compileSchema(t, "state_message.schema.json")

	w := newTestWorld(t, 71)
	stepTicks(w, 10)

	// Hold an item so the optional held/highlight fields are exercised too.
	w.heldItem = w.items[0]
	w.Step(testDT, 0)

	msg := StateMessage{
		Type:       messageTypeState,
		Protocol:   ProtocolVersion,
		Snapshot:   w.Snapshot(),
		ServerTime: time.Now().UnixMilli(),
	}
	if err := schema.Validate(asInstance(t, msg)); err != nil {
		t.Fatalf("state message failed schema validation: %v", err)
	}
}

func TestClientMessagesMatchSchema(t *testing.T) {
	schema := compileSchema(t, "client_message.schema.json")

	valid := []ClientMessage{
		{Type: messageTypeKey, Key: string(KeyForward), Pressed: true},
		{Type: messageTypeKey, Key: string(KeyLeft)},
		{Type: messageTypeInteract},
		{Type: messageTypeCamera, Heading: 1.25},
	}
	for _, msg := range valid {
		if err := schema.Validate(asInstance(t, msg)); err != nil {
			t.Fatalf("client message %+v failed schema validation: %v", msg, err)
		}
	}

	invalid := map[string]any{"type": "teleport"}
	if err := schema.Validate(invalid); err == nil {
		t.Fatalf("expected unknown message type to fail validation")
	}
}
