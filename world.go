package server

import (
	"context"
	"math/rand"
	"time"

	"stock-and-swipe/server/logging"
	gameplaylog "stock-and-swipe/server/logging/gameplay"
)

// Item is one product in play. While free-floating it roams the floor (or
// rides in a character's hands); once placed it rests on its assigned shelf
// with OnShelf set and leaves every eligibility scan.
type Item struct {
	ID          int64  `json:"id" jsonschema:"minimum=1"`
	Type        string `json:"type"`
	Position    Vec3   `json:"position"`
	OnShelf     bool   `json:"onShelf"`
	TargetShelf int    `json:"targetShelf"`
}

// World is the authoritative simulation state for one session. It is created
// once at startup and mutated only inside Step and the input setters; the
// host serializes access, the world itself takes no locks.
type World struct {
	cfg       Config
	publisher logging.Publisher
	rng       *rand.Rand

	tick        uint64
	items       []*Item
	nextItemID  int64
	score       int
	stolenCount int

	// heldItem points into items; ownership of the reference moves on
	// pickup and is dropped before the item leaves the slice.
	heldItem *Item

	// guardTicks suppresses interaction and held-item following for a short
	// window after a placement, counted on the simulation clock.
	guardTicks int

	effects []PlacementEffect

	player playerState
	thief  thiefState
	input  inputState
}

// NewWorld builds a session world: validated config, seeded RNG, thief parked
// at the door, and the configured number of items scattered on the floor.
func NewWorld(cfg Config, publisher logging.Publisher) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &World{
		cfg:       cfg,
		publisher: publisher,
		rng:       rand.New(rand.NewSource(seed)),
		items:     make([]*Item, 0, cfg.SeedItemCount),
		effects:   make([]PlacementEffect, 0),
	}
	w.player = newPlayerState()
	w.thief = newThiefState(cfg)
	w.input = newInputState()
	for i := 0; i < cfg.SeedItemCount; i++ {
		w.spawnItem()
	}
	return w, nil
}

// mustBeInitialized guards every public accessor: calling into a nil world is
// a wiring bug in the host, not a runtime condition, so it fails fast.
func (w *World) mustBeInitialized() {
	if w == nil {
		panic("server: world not initialized")
	}
}

// Config returns the tuning the world was built with.
func (w *World) Config() Config {
	w.mustBeInitialized()
	return w.cfg
}

// Score returns the session score.
func (w *World) Score() int {
	w.mustBeInitialized()
	return w.score
}

// StolenCount returns how many items the thief currently holds conceptually.
func (w *World) StolenCount() int {
	w.mustBeInitialized()
	return w.stolenCount
}

// Tick returns the current simulation tick.
func (w *World) Tick() uint64 {
	w.mustBeInitialized()
	return w.tick
}

// ActiveItemCount counts free-floating items: spawned, not yet shelved.
func (w *World) ActiveItemCount() int {
	w.mustBeInitialized()
	count := 0
	for _, item := range w.items {
		if !item.OnShelf {
			count++
		}
	}
	return count
}

func (w *World) randomFloat() float64 {
	return w.rng.Float64()
}

func (w *World) randomIndex(n int) int {
	return w.rng.Intn(n)
}

func (w *World) logSpawnFallback(pos Vec3) {
	gameplaylog.SpawnFallback(context.Background(), w.publisher, w.tick, gameplaylog.SpawnFallbackPayload{
		X:        pos.X,
		Z:        pos.Z,
		Attempts: spawnAttempts,
	})
}
