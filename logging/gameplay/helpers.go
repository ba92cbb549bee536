package gameplay

import (
	"context"

	"stock-and-swipe/server/logging"
)

const (
	// EventItemSpawned is emitted whenever a new item enters the floor.
	EventItemSpawned logging.EventType = "gameplay.item_spawned"
	// EventSpawnFallback is emitted when position sampling exhausted its
	// attempts and a possibly colliding position was accepted.
	EventSpawnFallback logging.EventType = "gameplay.spawn_fallback"
	// EventItemPickedUp is emitted when the player picks up an item.
	EventItemPickedUp logging.EventType = "gameplay.item_picked_up"
	// EventItemPlaced is emitted when an item reaches its target shelf.
	EventItemPlaced logging.EventType = "gameplay.item_placed"
	// EventItemStolen is emitted when the thief grabs an item.
	EventItemStolen logging.EventType = "gameplay.item_stolen"
	// EventThiefCaptured is emitted when the player corners the thief.
	EventThiefCaptured logging.EventType = "gameplay.thief_captured"
	// EventThiefStateChanged traces thief state machine transitions.
	EventThiefStateChanged logging.EventType = "gameplay.thief_state_changed"
)

// ItemPayload identifies an item and where it sat when the event fired.
type ItemPayload struct {
	ItemType string  `json:"itemType"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
}

// PlacedPayload describes a successful shelf placement.
type PlacedPayload struct {
	ItemType string `json:"itemType"`
	Shelf    int    `json:"shelf"`
	Score    int    `json:"score"`
}

// CapturedPayload describes a thief capture.
type CapturedPayload struct {
	Recovered   bool `json:"recovered"`
	StolenCount int  `json:"stolenCount"`
}

// StateChangedPayload traces one FSM transition.
type StateChangedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SpawnFallbackPayload records the accepted best-effort position.
type SpawnFallbackPayload struct {
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Attempts int     `json:"attempts"`
}

func ItemSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventItemSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func SpawnFallback(ctx context.Context, pub logging.Publisher, tick uint64, payload SpawnFallbackPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventSpawnFallback,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySystem,
		Payload:  payload,
	})
}

func ItemPickedUp(ctx context.Context, pub logging.Publisher, tick uint64, item logging.EntityRef, payload ItemPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventItemPickedUp,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindPlayer},
		Targets:  []logging.EntityRef{item},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func ItemPlaced(ctx context.Context, pub logging.Publisher, tick uint64, item logging.EntityRef, payload PlacedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventItemPlaced,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindPlayer},
		Targets:  []logging.EntityRef{item},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func ItemStolen(ctx context.Context, pub logging.Publisher, tick uint64, item logging.EntityRef, payload ItemPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventItemStolen,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindThief},
		Targets:  []logging.EntityRef{item},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func ThiefCaptured(ctx context.Context, pub logging.Publisher, tick uint64, payload CapturedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventThiefCaptured,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindPlayer},
		Targets:  []logging.EntityRef{{Kind: logging.EntityKindThief}},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func ThiefStateChanged(ctx context.Context, pub logging.Publisher, tick uint64, payload StateChangedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventThiefStateChanged,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindThief},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
