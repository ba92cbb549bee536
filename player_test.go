package server

import (
	"math"
	"testing"
)

func TestPlayerMovesCameraRelative(t *testing.T) {
	w := newEmptyTestWorld(t, 21)

	w.SetKeyState(KeyForward, true)
	w.Step(testDT, 0)
	if w.player.Position.Z <= 0 {
		t.Fatalf("expected forward key with camera at 0 to move +Z, got %.3f", w.player.Position.Z)
	}

	w2 := newEmptyTestWorld(t, 21)
	w2.SetKeyState(KeyForward, true)
	w2.Step(testDT, math.Pi/2)
	if w2.player.Position.X <= 0 {
		t.Fatalf("expected forward key with camera at pi/2 to move +X, got %.3f", w2.player.Position.X)
	}
	if math.Abs(w2.player.Position.Z) > 1e-9 {
		t.Fatalf("expected no Z drift when moving along +X, got %.3f", w2.player.Position.Z)
	}
}

func TestDiagonalInputIsNormalized(t *testing.T) {
	w := newEmptyTestWorld(t, 22)
	w.SetKeyState(KeyForward, true)
	w.SetKeyState(KeyRight, true)
	w.Step(testDT, 0)

	moved := math.Hypot(w.player.Position.X, w.player.Position.Z)
	want := w.cfg.PlayerSpeed * testDT
	if math.Abs(moved-want) > 1e-9 {
		t.Fatalf("diagonal movement %.5f, want speed-clamped %.5f", moved, want)
	}
}

func TestMoveIntoShelfIsRejectedWholesale(t *testing.T) {
	w := newEmptyTestWorld(t, 23)
	// One step short of the keep-out of the anchor at (-1.5, -3).
	w.player.Position = Vec3{X: -1.5, Z: -2.40}
	w.SetKeyState(KeyBack, true)

	w.Step(testDT, 0)

	if w.player.Position.X != -1.5 || w.player.Position.Z != -2.40 {
		t.Fatalf("expected colliding move to be rejected wholesale, player at (%.3f, %.3f)",
			w.player.Position.X, w.player.Position.Z)
	}
}

func TestPlayerStaysInsideWorldBounds(t *testing.T) {
	w := newEmptyTestWorld(t, 24)
	w.player.Position = Vec3{X: 4.4, Z: 0}
	w.SetKeyState(KeyRight, true)

	stepTicks(w, 60)

	if w.player.Position.X > w.cfg.WorldBound {
		t.Fatalf("player escaped world bounds: %.3f", w.player.Position.X)
	}
	if w.player.Position.X != w.cfg.WorldBound {
		t.Fatalf("expected player pinned at the bound, got %.3f", w.player.Position.X)
	}
}

func TestHeadingTurnsTowardMovement(t *testing.T) {
	w := newEmptyTestWorld(t, 25)
	w.SetKeyState(KeyRight, true)

	stepTicks(w, 30)

	if math.Abs(normalizeAngle(w.player.Heading-math.Pi/2)) > 1e-6 {
		t.Fatalf("expected heading to settle at pi/2, got %.4f", w.player.Heading)
	}
}

func TestPickupFirstMatchWins(t *testing.T) {
	w := newEmptyTestWorld(t, 26)
	first := addItem(w, 1, Vec3{X: 0.3}, 0)
	addItem(w, 2, Vec3{X: 0.1, Z: 0.1}, 0) // closer, but later in iteration order

	w.Interact()
	w.Step(testDT, 0)

	if w.heldItem != first {
		t.Fatalf("expected first item in iteration order to win the pickup")
	}
}

func TestPickupRequiresProximity(t *testing.T) {
	w := newEmptyTestWorld(t, 27)
	addItem(w, 1, Vec3{X: 0.6}, 0)

	w.Interact()
	w.Step(testDT, 0)

	if w.heldItem != nil {
		t.Fatalf("expected pickup beyond 0.5 to be a no-op")
	}
}

func TestShelvedItemsAreNotPickable(t *testing.T) {
	w := newEmptyTestWorld(t, 28)
	item := addItem(w, 1, Vec3{X: 0.2}, 0)
	item.OnShelf = true

	w.Interact()
	w.Step(testDT, 0)

	if w.heldItem != nil {
		t.Fatalf("shelved items must not be pickable")
	}
}

func TestPlacementAtTargetShelfScenario(t *testing.T) {
	w := newEmptyTestWorld(t, 29)
	item := addItem(w, 1, Vec3{X: 0.2}, 0) // target shelf anchor (-1.5, -3)
	w.heldItem = item

	w.player.Position = Vec3{X: -1.5, Z: -2.21} // 0.79 from the anchor
	activeBefore := w.ActiveItemCount()

	w.Interact()
	w.Step(testDT, 0)

	if !item.OnShelf {
		t.Fatalf("expected item on shelf")
	}
	if item.Position.X != -1.5 || item.Position.Y != 0.3 || item.Position.Z != -3 {
		t.Fatalf("expected item resting at (-1.5, 0.3, -3), got (%.2f, %.2f, %.2f)",
			item.Position.X, item.Position.Y, item.Position.Z)
	}
	if w.Score() != 10 {
		t.Fatalf("expected score 10, got %d", w.Score())
	}
	if got := w.ActiveItemCount(); got != activeBefore {
		t.Fatalf("expected replacement spawn to keep active count at %d, got %d", activeBefore, got)
	}
	if len(w.effects) != 1 {
		t.Fatalf("expected one placement effect, got %d", len(w.effects))
	}
}

func TestPlacementAtWrongShelfIsNoOp(t *testing.T) {
	w := newEmptyTestWorld(t, 30)
	item := addItem(w, 1, Vec3{X: 0.2}, 0) // target (-1.5, -3)
	w.heldItem = item

	// Within range of shelf 4 at (1.5, -3), not the assigned one.
	w.player.Position = Vec3{X: 1.5, Z: -2.3}

	w.Interact()
	w.Step(testDT, 0)

	if item.OnShelf {
		t.Fatalf("placement must only succeed at the assigned shelf")
	}
	if w.heldItem != item {
		t.Fatalf("expected player to keep holding the item")
	}
	if w.Score() != 0 {
		t.Fatalf("expected no score, got %d", w.Score())
	}
}

func TestPlacementGuardSuppressesInteraction(t *testing.T) {
	w := newEmptyTestWorld(t, 31)
	item := addItem(w, 1, Vec3{X: 0.2}, 0)
	w.heldItem = item
	w.player.Position = Vec3{X: -1.5, Z: -2.3}

	w.Interact()
	w.Step(testDT, 0)
	if w.heldItem != nil {
		t.Fatalf("expected placement to clear the held item")
	}

	// Something to grab right next to the player.
	addItem(w, 50, Vec3{X: -1.5, Z: -2.2}, 1)

	w.Interact()
	w.Step(testDT, 0)
	if w.heldItem != nil {
		t.Fatalf("expected interact suppressed during the placement guard")
	}

	stepTicks(w, w.cfg.placeGuardTicks())
	w.Interact()
	w.Step(testDT, 0)
	if w.heldItem == nil {
		t.Fatalf("expected interact to work after the guard expired")
	}
}

func TestHeldItemTrailsInFrontOfPlayer(t *testing.T) {
	w := newEmptyTestWorld(t, 32)
	item := addItem(w, 1, Vec3{X: 2, Z: 2}, 0)
	w.heldItem = item

	// Facing +Z, standing still.
	w.Step(testDT, 0)

	if math.Abs(item.Position.Z-(w.player.Position.Z+heldItemLead)) > 1e-9 {
		t.Fatalf("expected held item %.2f in front, got z=%.3f", heldItemLead, item.Position.Z)
	}
	if math.Abs(item.Position.X-w.player.Position.X) > 1e-9 {
		t.Fatalf("expected held item centered on the facing line, got x=%.3f", item.Position.X)
	}
	if math.Abs(item.Position.Y-(w.player.Position.Y+heldItemLift)) > 1e-9 {
		t.Fatalf("expected held item lifted by %.2f, got y=%.3f", heldItemLift, item.Position.Y)
	}

	// A second idle tick moves the bob by far less than the hysteresis
	// threshold, so the held position must not be rewritten.
	before := item.Position
	w.Step(testDT, 0)
	if item.Position != before {
		t.Fatalf("expected hysteresis to suppress sub-threshold updates")
	}
}
