package server

const (
	// spawnAttempts caps rejection sampling for free positions. After the
	// cap the last sample is accepted even if it overlaps a shelf; see
	// findNonCollidingPosition.
	spawnAttempts = 20

	// shelfRestHeight is the Y offset of an item resting on its shelf.
	shelfRestHeight = 0.3

	// heldItemLead is how far in front of the player a carried item floats.
	heldItemLead = 0.4
	// heldItemLift raises the carried item above the player's animated height.
	heldItemLift = 0.1
	// heldItemEpsilon suppresses held-item position writes smaller than this.
	heldItemEpsilon = 0.01

	// walkBobFrequency and walkBobAmplitude drive the cosmetic stride bounce.
	walkBobFrequency = 10.0
	walkBobAmplitude = 0.05
	idleBobFrequency = 2.0
	idleBobAmplitude = 0.02
	walkTiltAmount   = 0.08
)
