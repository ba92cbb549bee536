package server

// PoseSnapshot is a character pose as the renderer consumes it.
type PoseSnapshot struct {
	Position Vec3    `json:"position"`
	Heading  float64 `json:"heading"`
	Tilt     float64 `json:"tilt,omitempty"`
}

// ThiefSnapshot adds the FSM state so the renderer can animate intent.
type ThiefSnapshot struct {
	PoseSnapshot
	State    string `json:"state" jsonschema:"enum=waiting,enum=entering,enum=searching,enum=escaping,enum=fleeing"`
	Carrying bool   `json:"carrying"`
}

// Snapshot is the full per-tick view handed to the render adapter: poses,
// items, the held item, the highlighted shelf, and live effects.
type Snapshot struct {
	Tick             uint64            `json:"tick"`
	Score            int               `json:"score"`
	StolenCount      int               `json:"stolenCount"`
	Player           PoseSnapshot      `json:"player"`
	Thief            ThiefSnapshot     `json:"thief"`
	Items            []Item            `json:"items"`
	HeldItemID       int64             `json:"heldItemId,omitempty"`
	HighlightedShelf *Vec3             `json:"highlightedShelf,omitempty"`
	Effects          []PlacementEffect `json:"effects"`
}

// Snapshot copies the current state for broadcasting. Nothing in the result
// aliases world memory.
func (w *World) Snapshot() Snapshot {
	w.mustBeInitialized()

	items := make([]Item, 0, len(w.items))
	for _, item := range w.items {
		items = append(items, *item)
	}

	snap := Snapshot{
		Tick:        w.tick,
		Score:       w.score,
		StolenCount: w.stolenCount,
		Player: PoseSnapshot{
			Position: w.player.Position,
			Heading:  w.player.Heading,
			Tilt:     w.player.Tilt,
		},
		Thief: ThiefSnapshot{
			PoseSnapshot: PoseSnapshot{
				Position: w.thief.Position,
				Heading:  w.thief.Heading,
			},
			State:    w.thief.State.String(),
			Carrying: w.thief.held != nil,
		},
		Items:   items,
		Effects: w.Effects(),
	}

	if w.heldItem != nil {
		snap.HeldItemID = w.heldItem.ID
		anchor := w.cfg.ShelfAnchors[w.heldItem.TargetShelf]
		snap.HighlightedShelf = &anchor
	}

	return snap
}
