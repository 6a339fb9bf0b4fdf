package common

import "math"

// Down is the screen-space downward unit vector (ebiten's Y grows down).
const (
	DownX = 0.0
	DownY = 1.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current towards target by at most maxDelta without
// overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + math.Copysign(maxDelta, target-current)
}

// Normalize returns the unit vector of (x, y), or (0, 0) for a zero or
// near-zero vector.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l <= 1e-9 {
		return 0, 0
	}
	return x / l, y / l
}

func IsZero(x, y float64) bool {
	return x == 0 && y == 0
}
