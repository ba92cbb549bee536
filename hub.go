package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Hub owns the world on behalf of its websocket subscribers. It is the host
// side of the render adapter: the ticker loop steps the simulation and
// broadcasts snapshots, while inbound messages feed the core's input API.
// All world access goes through h.mu, so the single-threaded core never sees
// concurrent mutation.
type Hub struct {
	mu            sync.Mutex
	world         *World
	cameraHeading float64
	subscribers   map[uint64]*subscriber
	nextSubID     atomic.Uint64
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewHub(world *World) *Hub {
	world.mustBeInitialized()
	return &Hub{
		world:       world,
		subscribers: make(map[uint64]*subscriber),
	}
}

// Run drives the simulation at the configured tick rate until stop closes.
func (h *Hub) Run(stop <-chan struct{}) {
	tickRate := h.world.Config().TickRate
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			last = now

			h.mu.Lock()
			h.world.Step(dt, h.cameraHeading)
			snap := h.world.Snapshot()
			h.mu.Unlock()

			h.broadcastState(snap)
		}
	}
}

func (h *Hub) broadcastState(snap Snapshot) {
	msg := StateMessage{
		Type:       messageTypeState,
		Protocol:   ProtocolVersion,
		Snapshot:   snap,
		ServerTime: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("dropping subscriber %d: %v", id, err)
			h.disconnect(id)
		}
	}
}

func (h *Hub) subscribe(conn *websocket.Conn) uint64 {
	id := h.nextSubID.Add(1)
	h.mu.Lock()
	h.subscribers[id] = &subscriber{conn: conn}
	h.mu.Unlock()
	return id
}

func (h *Hub) disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// handleClientMessage applies one decoded input message to the world.
func (h *Hub) handleClientMessage(msg ClientMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch msg.Type {
	case messageTypeKey:
		h.world.SetKeyState(Key(msg.Key), msg.Pressed)
	case messageTypeInteract:
		h.world.Interact()
	case messageTypeCamera:
		h.cameraHeading = msg.Heading
	default:
		log.Printf("unknown message type %q", msg.Type)
	}
}

// Diagnostics is a point-in-time operational summary for the HTTP endpoint.
type Diagnostics struct {
	Tick        uint64 `json:"tick"`
	Score       int    `json:"score"`
	StolenCount int    `json:"stolenCount"`
	ThiefState  string `json:"thiefState"`
	Subscribers int    `json:"subscribers"`
	TickRate    int    `json:"tickRate"`
}

func (h *Hub) DiagnosticsSnapshot() Diagnostics {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Diagnostics{
		Tick:        h.world.Tick(),
		Score:       h.world.Score(),
		StolenCount: h.world.StolenCount(),
		ThiefState:  h.world.ThiefStateNow().String(),
		Subscribers: len(h.subscribers),
		TickRate:    h.world.Config().TickRate,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// ServeWS upgrades a connection, sends the current snapshot, then pumps
// client input until the connection drops.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}

	id := h.subscribe(conn)

	h.mu.Lock()
	snap := h.world.Snapshot()
	h.mu.Unlock()
	h.broadcastInitial(id, snap)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.disconnect(id)
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Printf("discarding malformed message from %d: %v", id, err)
			continue
		}
		h.handleClientMessage(msg)
	}
}

func (h *Hub) broadcastInitial(id uint64, snap Snapshot) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	h.mu.Unlock()
	if !ok {
		return
	}
	msg := StateMessage{
		Type:       messageTypeState,
		Protocol:   ProtocolVersion,
		Snapshot:   snap,
		ServerTime: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal initial state: %v", err)
		return
	}
	sub.mu.Lock()
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		sub.mu.Unlock()
		h.disconnect(id)
		return
	}
	sub.mu.Unlock()
}
