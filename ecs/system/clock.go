package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	DefaultTPS     = 60
	DefaultFixedHz = 50

	// maxFixedSteps bounds catch-up work after a long frame.
	maxFixedSteps = 5
)

// SimClockSystem advances the shared simulation clock once per frame.
type SimClockSystem struct {
	tps     int
	fixedHz int
}

func NewSimClockSystem(tps, fixedHz int) *SimClockSystem {
	if tps <= 0 {
		tps = DefaultTPS
	}
	if fixedHz <= 0 {
		fixedHz = DefaultFixedHz
	}
	return &SimClockSystem{tps: tps, fixedHz: fixedHz}
}

func (s *SimClockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	c := EnsureClock(w, s.tps, s.fixedHz)
	c.Frame++
	c.Delta = 1 / float64(s.tps)
	c.Accumulator += c.ScaledDelta()
}

// EnsureClock returns the clock singleton, creating it if needed.
func EnsureClock(w *ecs.World, tps, fixedHz int) *component.SimClock {
	if c := Clock(w); c != nil {
		return c
	}
	if tps <= 0 {
		tps = DefaultTPS
	}
	if fixedHz <= 0 {
		fixedHz = DefaultFixedHz
	}
	c := &component.SimClock{
		Delta:      1 / float64(tps),
		TimeScale:  1,
		FixedDelta: 1 / float64(fixedHz),
	}
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.SimClockComponent.Kind(), c); err != nil {
		panic("clock: add sim clock: " + err.Error())
	}
	return c
}

// Clock returns the clock singleton, or nil when the world has none.
func Clock(w *ecs.World) *component.SimClock {
	ent, ok := ecs.First(w, component.SimClockComponent.Kind())
	if !ok {
		return nil
	}
	c, _ := ecs.Get(w, ent, component.SimClockComponent.Kind())
	return c
}

func clockFrame(w *ecs.World) uint64 {
	if c := Clock(w); c != nil {
		return c.Frame
	}
	return 0
}

// FixedSteps consumes accumulated scaled time and reports how many fixed
// steps the host should run this frame.
func FixedSteps(w *ecs.World) int {
	c := Clock(w)
	if c == nil || c.FixedDelta <= 0 {
		return 0
	}
	steps := 0
	for c.Accumulator >= c.FixedDelta && steps < maxFixedSteps {
		c.Accumulator -= c.FixedDelta
		steps++
	}
	if steps == maxFixedSteps && c.Accumulator > c.FixedDelta {
		c.Accumulator = 0
	}
	return steps
}
