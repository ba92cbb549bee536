package server

// Wire messages exchanged with the render/input adapter over the websocket.
// Schemas for these live under schemas/ and are regenerated by
// cmd/schemagen; messages_schema_test.go keeps them honest.

const ProtocolVersion = 1

// StateMessage carries one snapshot to every subscriber per tick.
type StateMessage struct {
	Type       string   `json:"type" jsonschema:"enum=state"`
	Protocol   int      `json:"protocol"`
	Snapshot   Snapshot `json:"snapshot"`
	ServerTime int64    `json:"serverTime"`
}

// ClientMessage is the tagged union of everything a client may send: key
// edges, interact presses, and camera heading updates.
type ClientMessage struct {
	Type    string  `json:"type" jsonschema:"enum=key,enum=interact,enum=camera"`
	Key     string  `json:"key,omitempty" jsonschema:"enum=forward,enum=back,enum=left,enum=right"`
	Pressed bool    `json:"pressed,omitempty"`
	Heading float64 `json:"heading,omitempty"`
}

const (
	messageTypeState    = "state"
	messageTypeKey      = "key"
	messageTypeInteract = "interact"
	messageTypeCamera   = "camera"
)
