package server

// Key identifies one control in the fixed input set. The host's input
// adapter maps raw keyboard events onto these; the core never sees raw key
// codes.
type Key string

const (
	KeyForward Key = "forward"
	KeyBack    Key = "back"
	KeyLeft    Key = "left"
	KeyRight   Key = "right"
)

// inputState buffers key edges between ticks. Keyboard events arrive on the
// host's schedule; each tick consults the pressed set instead of reacting at
// event time.
type inputState struct {
	keys     map[Key]bool
	interact bool
}

func newInputState() inputState {
	return inputState{keys: make(map[Key]bool)}
}

// SetKeyState records a key-down or key-up edge from the input adapter.
// Unknown keys are ignored.
func (w *World) SetKeyState(key Key, pressed bool) {
	w.mustBeInitialized()
	switch key {
	case KeyForward, KeyBack, KeyLeft, KeyRight:
		w.input.keys[key] = pressed
	}
}

// Interact latches one interaction request; the next Step consumes it. A
// second call before the tick runs is idempotent.
func (w *World) Interact() {
	w.mustBeInitialized()
	w.input.interact = true
}

func (s *inputState) consumeInteract() bool {
	fired := s.interact
	s.interact = false
	return fired
}

// moveAxes blends the pressed set into a camera-space movement vector:
// x is strafe (right positive), z is advance (forward positive). Diagonals
// come out as the raw sum and are normalized by the caller.
func (s *inputState) moveAxes() (float64, float64) {
	var x, z float64
	if s.keys[KeyForward] {
		z++
	}
	if s.keys[KeyBack] {
		z--
	}
	if s.keys[KeyLeft] {
		x--
	}
	if s.keys[KeyRight] {
		x++
	}
	return x, z
}
