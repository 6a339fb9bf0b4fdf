package system

import (
	"github.com/milk9111/topdown/ecs"
)

// TimeScaleSystem applies time scale changes that were requested with a
// delay. It runs before SimClockSystem so the new scale governs the frame
// it lands on.
type TimeScaleSystem struct {
	onChange func(scale float64)
}

func NewTimeScaleSystem(onChange func(scale float64)) *TimeScaleSystem {
	return &TimeScaleSystem{onChange: onChange}
}

func (s *TimeScaleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	c := Clock(w)
	if c == nil || !c.HasPending {
		return
	}
	c.PendingTicks--
	if c.PendingTicks > 0 {
		return
	}
	c.HasPending = false
	if c.TimeScale == c.PendingScale {
		return
	}
	c.TimeScale = c.PendingScale
	if s.onChange != nil {
		s.onChange(c.TimeScale)
	}
}

// RequestTimeScale sets the clock's time scale after delayTicks frames, or
// immediately when delayTicks is zero. A new request replaces a pending one.
func RequestTimeScale(w *ecs.World, scale float64, delayTicks int) {
	c := Clock(w)
	if c == nil {
		return
	}
	if delayTicks <= 0 {
		c.TimeScale = scale
		c.HasPending = false
		c.PendingTicks = 0
		return
	}
	c.PendingScale = scale
	c.PendingTicks = delayTicks
	c.HasPending = true
}
