package server

// PlacementEffect is transient visual feedback fired when an item reaches
// its shelf. Effects age on the simulation clock and are pruned once they
// outlive the configured TTL; the queue stays FIFO so the renderer can fade
// the oldest first.
type PlacementEffect struct {
	Position Vec3    `json:"position"`
	ItemType string  `json:"itemType"`
	Age      float64 `json:"age"`
}

func (w *World) enqueueEffect(pos Vec3, itemType string) {
	w.effects = append(w.effects, PlacementEffect{Position: pos, ItemType: itemType})
}

// advanceEffects ages the queue by dt and drops expired entries. Effects are
// appended in creation order, so expiry only ever trims the front.
func (w *World) advanceEffects(dt float64) {
	for i := range w.effects {
		w.effects[i].Age += dt
	}
	expired := 0
	for expired < len(w.effects) && w.effects[expired].Age >= w.cfg.EffectTTLSeconds {
		expired++
	}
	if expired > 0 {
		w.effects = append(w.effects[:0], w.effects[expired:]...)
	}
}

// Effects returns a copy of the live effect queue for rendering.
func (w *World) Effects() []PlacementEffect {
	w.mustBeInitialized()
	out := make([]PlacementEffect, len(w.effects))
	copy(out, w.effects)
	return out
}
