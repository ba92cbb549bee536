package server

import "math"

// Vec3 is a world-space coordinate. Y is a derived animation offset for
// characters and a fixed rest height for shelved items; all gameplay
// predicates work on the XZ plane.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// planarDistance measures Euclidean distance on the XZ plane.
func planarDistance(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// IsNear reports whether a and b are within radius of each other on the XZ
// plane. Pickup and placement checks both go through here.
func IsNear(a, b Vec3, radius float64) bool {
	return planarDistance(a, b) < radius
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// normalizePlanar returns the unit XZ direction of v, or zero if v has no
// planar length.
func normalizePlanar(x, z float64) (float64, float64) {
	length := math.Hypot(x, z)
	if length == 0 {
		return 0, 0
	}
	return x / length, z / length
}

// headingToward returns the heading angle that faces the movement vector.
func headingToward(dx, dz float64) float64 {
	return math.Atan2(dx, dz)
}

// turnToward advances current toward target along the shortest angular path,
// moving at most rate radians. Headings stay in (-pi, pi].
func turnToward(current, target, rate float64) float64 {
	diff := normalizeAngle(target - current)
	if math.Abs(diff) <= rate {
		return normalizeAngle(target)
	}
	if diff > 0 {
		return normalizeAngle(current + rate)
	}
	return normalizeAngle(current - rate)
}

func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
