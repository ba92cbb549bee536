package server

import (
	"context"
	"math"

	gameplaylog "stock-and-swipe/server/logging/gameplay"
)

// ThiefState enumerates the thief's finite-state machine. The zero value is
// Waiting; transitions happen only inside advanceThief.
type ThiefState int

const (
	ThiefWaiting ThiefState = iota
	ThiefEntering
	ThiefSearching
	ThiefEscaping
	ThiefFleeing
)

func (s ThiefState) String() string {
	switch s {
	case ThiefWaiting:
		return "waiting"
	case ThiefEntering:
		return "entering"
	case ThiefSearching:
		return "searching"
	case ThiefEscaping:
		return "escaping"
	case ThiefFleeing:
		return "fleeing"
	default:
		return "unknown"
	}
}

// thiefState is the agent's pose plus FSM bookkeeping. The thief owns its
// pose independently of the player; only items and the stolen count are
// shared through the world.
type thiefState struct {
	State    ThiefState
	Position Vec3
	Heading  float64

	waitTicks     int
	cooldownTicks int
	targetItemID  int64
	held          *Item
}

func newThiefState(cfg Config) thiefState {
	return thiefState{
		State:     ThiefWaiting,
		Position:  cfg.Thief.Door,
		waitTicks: cfg.secondsToTicks(cfg.Thief.WaitSeconds),
	}
}

// advanceThief runs one tick of the state machine. A capture interrupt fires
// first: any active state collapses to Fleeing when the player closes within
// the capture radius.
func (w *World) advanceThief(dt float64) {
	t := &w.thief

	if t.State != ThiefWaiting && t.State != ThiefFleeing &&
		planarDistance(w.player.Position, t.Position) < w.cfg.Thief.CaptureRadius {
		w.captureThief()
	}

	switch t.State {
	case ThiefWaiting:
		t.waitTicks--
		if t.waitTicks <= 0 {
			t.Position = w.cfg.Thief.Door
			w.setThiefState(ThiefEntering)
		}

	case ThiefEntering:
		if planarDistance(t.Position, w.cfg.Thief.Entry) < w.cfg.Thief.ArriveRadius {
			w.setThiefState(ThiefSearching)
			return
		}
		w.moveThiefToward(w.cfg.Thief.Entry, w.cfg.Thief.Speed, dt)

	case ThiefSearching:
		if t.targetItemID == 0 {
			item := w.nearestStealableItem(t.Position)
			if item == nil {
				w.setThiefState(ThiefEscaping)
				return
			}
			t.targetItemID = item.ID
		}
		item := w.itemByID(t.targetItemID)
		if item == nil || item.OnShelf || item == w.heldItem {
			// Target got shelved or picked up; reselect next tick.
			t.targetItemID = 0
			return
		}
		if planarDistance(t.Position, item.Position) < w.cfg.Thief.StealRadius {
			w.stealItem(item)
			return
		}
		w.moveThiefToward(item.Position, w.cfg.Thief.Speed, dt)

	case ThiefEscaping:
		if planarDistance(t.Position, w.cfg.Thief.Door) < w.cfg.Thief.ArriveRadius {
			t.held = nil
			t.targetItemID = 0
			t.waitTicks = w.cfg.secondsToTicks(w.cfg.Thief.WaitSeconds)
			w.setThiefState(ThiefWaiting)
			return
		}
		w.moveThiefToward(w.cfg.Thief.Door, w.cfg.Thief.Speed, dt)

	case ThiefFleeing:
		if t.cooldownTicks > 0 {
			t.cooldownTicks--
			if t.cooldownTicks <= 0 {
				t.waitTicks = w.cfg.secondsToTicks(w.cfg.Thief.WaitSeconds)
				w.setThiefState(ThiefWaiting)
			}
			return
		}
		if planarDistance(t.Position, w.cfg.Thief.Door) < w.cfg.Thief.ArriveRadius || w.thiefOutOfBounds() {
			t.cooldownTicks = w.cfg.secondsToTicks(w.cfg.Thief.CooldownSeconds)
			return
		}
		w.moveThiefToward(w.cfg.Thief.Door, w.cfg.Thief.FleeSpeed, dt)
	}
}

// stealItem removes the target from the floor and carries it toward the door.
func (w *World) stealItem(item *Item) {
	t := &w.thief
	w.removeItem(item.ID)
	t.held = item
	t.targetItemID = 0
	w.stolenCount++
	gameplaylog.ItemStolen(context.Background(), w.publisher, w.tick, itemRef(item), gameplaylog.ItemPayload{
		ItemType: item.Type,
		X:        item.Position.X,
		Z:        item.Position.Z,
	})
	w.setThiefState(ThiefEscaping)
}

// captureThief handles the proximity interrupt: a carried item returns to
// the floor at the thief's feet, the stolen count gives one back, and the
// thief bolts for the door.
func (w *World) captureThief() {
	t := &w.thief
	recovered := t.held != nil
	if recovered {
		w.recycleAfterTheft(t.held, t.Position)
		t.held = nil
	}
	t.targetItemID = 0
	gameplaylog.ThiefCaptured(context.Background(), w.publisher, w.tick, gameplaylog.CapturedPayload{
		Recovered:   recovered,
		StolenCount: w.stolenCount,
	})
	w.setThiefState(ThiefFleeing)
}

// moveThiefToward advances the thief in a straight line, ignoring shelf
// collision, with the heading snapped to the movement vector.
func (w *World) moveThiefToward(target Vec3, speed, dt float64) {
	t := &w.thief
	dirX, dirZ := normalizePlanar(target.X-t.Position.X, target.Z-t.Position.Z)
	if dirX == 0 && dirZ == 0 {
		return
	}
	step := speed * dt
	if dist := planarDistance(t.Position, target); step > dist {
		step = dist
	}
	t.Position.X += dirX * step
	t.Position.Z += dirZ * step
	t.Heading = math.Atan2(dirX, dirZ)
}

func (w *World) thiefOutOfBounds() bool {
	t := &w.thief
	return math.Abs(t.Position.X) > w.cfg.WorldBound || math.Abs(t.Position.Z) > w.cfg.WorldBound
}

func (w *World) setThiefState(to ThiefState) {
	from := w.thief.State
	if from == to {
		return
	}
	w.thief.State = to
	gameplaylog.ThiefStateChanged(context.Background(), w.publisher, w.tick, gameplaylog.StateChangedPayload{
		From: from.String(),
		To:   to.String(),
	})
}

// ThiefStateNow returns the thief's current FSM state.
func (w *World) ThiefStateNow() ThiefState {
	w.mustBeInitialized()
	return w.thief.State
}
