package system

import (
	"math"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	defaultHoverAmplitude = 3
	defaultHoverSpeed     = 0.12
)

// PickupHoverSystem bobs the item a character holds up. It runs after
// AttachmentSystem has snapped the item above the character's head.
type PickupHoverSystem struct{}

func NewPickupHoverSystem() *PickupHoverSystem { return &PickupHoverSystem{} }

func (s *PickupHoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.HoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hover *component.Hover, t *component.Transform) {
		if hover.Amplitude == 0 {
			hover.Amplitude = defaultHoverAmplitude
		}
		if hover.Speed == 0 {
			hover.Speed = defaultHoverSpeed
		}

		hover.Phase += hover.Speed
		t.Y += math.Sin(hover.Phase) * hover.Amplitude
	})
}
