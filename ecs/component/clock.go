package component

// SimClock is the shared simulation clock. It replaces the engine's global
// frame counter and time scale: controllers read it and request changes to
// it, TimeScaleSystem applies them.
type SimClock struct {
	// Frame counts rendered frames, starting at 1 on the first tick. It
	// advances even while TimeScale is zero.
	Frame uint64
	// Delta is the unscaled seconds per frame.
	Delta float64
	// TimeScale multiplies Delta. Zero pauses gameplay time.
	TimeScale float64
	// FixedDelta is the seconds per fixed physics step.
	FixedDelta float64
	// Accumulator holds scaled time not yet consumed by fixed steps.
	Accumulator float64

	// PendingScale is applied once PendingTicks reaches zero.
	PendingScale float64
	PendingTicks int
	HasPending   bool
}

// ScaledDelta is the gameplay time that passes this frame.
func (c *SimClock) ScaledDelta() float64 {
	if c == nil {
		return 0
	}
	return c.Delta * c.TimeScale
}

var SimClockComponent = NewComponent[SimClock]()
