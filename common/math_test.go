package common

import (
	"math"
	"testing"
)

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name                      string
		current, target, maxDelta float64
		want                      float64
	}{
		{"decays", 1, 0, 0.25, 0.75},
		{"clamps_at_target", 0.1, 0, 0.25, 0},
		{"moves_up", -1, 0, 0.5, -0.5},
		{"zero_delta", 0.5, 0, 0, 0.5},
		{"already_there", 0, 0, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveTowards(c.current, c.target, c.maxDelta); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("MoveTowards(%v, %v, %v) = %v, want %v", c.current, c.target, c.maxDelta, got, c.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	x, y := Normalize(3, 4)
	if math.Abs(x-0.6) > 1e-9 || math.Abs(y-0.8) > 1e-9 {
		t.Fatalf("expected (0.6, 0.8), got (%v, %v)", x, y)
	}
	x, y = Normalize(0, 0)
	if x != 0 || y != 0 {
		t.Fatalf("expected zero vector, got (%v, %v)", x, y)
	}
}
