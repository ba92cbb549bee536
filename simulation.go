package server

// Step advances the simulation by one frame. dt is the elapsed time in
// seconds supplied by the host's frame scheduler; cameraHeading is the
// renderer's horizontal orbit angle, which movement input is relative to.
//
// Everything runs synchronously inside the tick: player movement, the
// buffered interact edge, the thief's state machine, effect aging, and the
// placement-guard countdown. Ordering within the tick is the correctness
// mechanism; there is no locking because there is no parallelism.
func (w *World) Step(dt, cameraHeading float64) {
	w.mustBeInitialized()
	if dt <= 0 {
		return
	}
	w.tick++

	w.advancePlayer(dt, cameraHeading)
	if w.input.consumeInteract() {
		w.handleInteract()
	}
	w.advanceThief(dt)
	w.advanceEffects(dt)

	if w.guardTicks > 0 {
		w.guardTicks--
	}
}
