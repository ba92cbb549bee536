package server

import (
	"context"
	"math"

	gameplaylog "stock-and-swipe/server/logging/gameplay"
)

// playerState is the player's pose: planar position, smoothed heading, and
// the cosmetic bob/tilt animation. Y is an animation offset, not physics.
type playerState struct {
	Position  Vec3
	Heading   float64
	Tilt      float64
	walkTimer float64
	moving    bool
}

func newPlayerState() playerState {
	return playerState{}
}

// advancePlayer resolves one frame of movement: blend the pressed keys into
// a camera-relative direction, reject the proposed position wholesale on
// shelf collision, clamp to world bounds, and smooth the heading toward the
// direction of travel. The carried item trails the new pose afterwards.
func (w *World) advancePlayer(dt, cameraHeading float64) {
	p := &w.player

	inX, inZ := w.input.moveAxes()
	p.moving = inX != 0 || inZ != 0

	if p.moving {
		// Rotate the input vector by the camera's horizontal heading so
		// "forward" always points away from the camera.
		sin, cos := math.Sincos(cameraHeading)
		dirX, dirZ := normalizePlanar(inX*cos+inZ*sin, inZ*cos-inX*sin)

		proposedX := clamp(p.Position.X+dirX*w.cfg.PlayerSpeed*dt, -w.cfg.WorldBound, w.cfg.WorldBound)
		proposedZ := clamp(p.Position.Z+dirZ*w.cfg.PlayerSpeed*dt, -w.cfg.WorldBound, w.cfg.WorldBound)

		// Whole-move rejection: no sliding along shelves.
		if !w.collidesWithShelf(proposedX, proposedZ) {
			p.Position.X = proposedX
			p.Position.Z = proposedZ
		}

		p.Heading = turnToward(p.Heading, headingToward(dirX, dirZ), w.cfg.TurnRate)
	}

	w.animatePlayer(dt)
	w.followHeldItem()
}

// animatePlayer drives the purely cosmetic stride bounce and tilt.
func (w *World) animatePlayer(dt float64) {
	p := &w.player
	p.walkTimer += dt
	if p.moving {
		p.Position.Y = math.Abs(math.Sin(p.walkTimer*walkBobFrequency)) * walkBobAmplitude
		p.Tilt = math.Sin(p.walkTimer*walkBobFrequency) * walkTiltAmount
	} else {
		p.Position.Y = math.Abs(math.Sin(p.walkTimer*idleBobFrequency)) * idleBobAmplitude
		p.Tilt *= 0.8
	}
}

// followHeldItem recomputes the carried item's position: a fixed lead in
// front of the facing direction, slightly above the animated height. Writes
// below the hysteresis threshold are skipped, and the post-placement guard
// window suppresses following entirely.
func (w *World) followHeldItem() {
	if w.heldItem == nil || w.guardTicks > 0 {
		return
	}
	p := &w.player
	sin, cos := math.Sincos(p.Heading)
	target := Vec3{
		X: p.Position.X + sin*heldItemLead,
		Y: p.Position.Y + heldItemLift,
		Z: p.Position.Z + cos*heldItemLead,
	}
	delta := math.Abs(target.X-w.heldItem.Position.X) +
		math.Abs(target.Y-w.heldItem.Position.Y) +
		math.Abs(target.Z-w.heldItem.Position.Z)
	if delta > heldItemEpsilon {
		w.heldItem.Position = target
	}
}

// handleInteract drives the pickup/place state machine. With empty hands the
// first free item in iteration order within pickup range is taken; while
// holding, placement succeeds only at the held item's own target shelf.
// Everything else is a silent no-op.
func (w *World) handleInteract() {
	if w.guardTicks > 0 {
		return
	}

	if w.heldItem == nil {
		item := w.firstItemWithin(w.player.Position, w.cfg.PickupRadius)
		if item == nil {
			return
		}
		w.heldItem = item
		gameplaylog.ItemPickedUp(context.Background(), w.publisher, w.tick, itemRef(item), gameplaylog.ItemPayload{
			ItemType: item.Type,
			X:        item.Position.X,
			Z:        item.Position.Z,
		})
		return
	}

	held := w.heldItem
	anchor := w.cfg.ShelfAnchors[held.TargetShelf]
	if !IsNear(w.player.Position, anchor, w.cfg.PlaceRadius) {
		return
	}

	// Release the held reference before mutating the item so no tick ever
	// observes a held item that is already shelved.
	w.heldItem = nil
	w.placeOnShelf(held)
	w.guardTicks = w.cfg.placeGuardTicks()
	w.spawnItem()
}

// HeldItemID returns the id of the item the player is carrying, or 0.
func (w *World) HeldItemID() int64 {
	w.mustBeInitialized()
	if w.heldItem == nil {
		return 0
	}
	return w.heldItem.ID
}
