package server

// Shelf anchors are static configuration: fixed coordinates where items can
// be permanently placed. They never move at runtime, so every collision and
// placement predicate can treat the slice as immutable.

// defaultShelfAnchors lays out two aisles of four slots each.
func defaultShelfAnchors() []Vec3 {
	return []Vec3{
		{X: -1.5, Z: -3},
		{X: -1.5, Z: -1},
		{X: -1.5, Z: 1},
		{X: -1.5, Z: 3},
		{X: 1.5, Z: -3},
		{X: 1.5, Z: -1},
		{X: 1.5, Z: 1},
		{X: 1.5, Z: 3},
	}
}

// shelfCollisionRadius is the planar keep-out distance around every shelf
// anchor: half the shelf footprint plus the character's own radius.
func (w *World) shelfCollisionRadius() float64 {
	return w.cfg.ShelfHalfWidth + w.cfg.CharacterRadius
}

// collidesWithShelf reports whether the planar point (x, z) is inside the
// keep-out distance of any shelf anchor.
func (w *World) collidesWithShelf(x, z float64) bool {
	probe := Vec3{X: x, Z: z}
	radius := w.shelfCollisionRadius()
	for _, anchor := range w.cfg.ShelfAnchors {
		if planarDistance(probe, anchor) < radius {
			return true
		}
	}
	return false
}

// findNonCollidingPosition draws uniform random points inside
// [-bounds, bounds]² until one clears every shelf, up to spawnAttempts
// draws. When the cap is exhausted the last sample is accepted as-is and a
// fallback event is published so the condition stays visible.
func (w *World) findNonCollidingPosition(bounds float64) Vec3 {
	var pos Vec3
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		pos = Vec3{
			X: (w.randomFloat()*2 - 1) * bounds,
			Z: (w.randomFloat()*2 - 1) * bounds,
		}
		if !w.collidesWithShelf(pos.X, pos.Z) {
			return pos
		}
	}
	w.logSpawnFallback(pos)
	return pos
}
