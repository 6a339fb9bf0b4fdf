package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// MovementSystem runs once per frame: it decays push time by the scaled
// frame delta and mirrors the sprite to the facing direction.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := 0.0
	if c := Clock(w); c != nil {
		dt = c.ScaledDelta()
	}

	ecs.ForEach(w, component.CharacterMovementComponent.Kind(), func(e ecs.Entity, mv *component.CharacterMovement) {
		mv.PushTime = common.MoveTowards(mv.PushTime, 0, dt)

		if mv.FacingX == 0 {
			return
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && sprite != nil {
			sprite.FacingLeft = mv.FacingX < 0
		}
	})
}

// MovementFixedSystem runs once per fixed step and resolves the single
// velocity a character moves with.
type MovementFixedSystem struct{}

func NewMovementFixedSystem() *MovementFixedSystem {
	return &MovementFixedSystem{}
}

func (s *MovementFixedSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CharacterMovementComponent.Kind(), func(e ecs.Entity, mv *component.CharacterMovement) {
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok || vel == nil {
			vel = &component.Velocity{}
			if err := ecs.Add(w, e, component.VelocityComponent.Kind(), vel); err != nil {
				return
			}
		}
		vel.X, vel.Y = resolveVelocity(mv)
	})
}

// resolveVelocity normalizes the stored direction as a side effect, the
// same way input is consumed each fixed step.
func resolveVelocity(mv *component.CharacterMovement) (float64, float64) {
	if mv.Frozen || mv.Attacking {
		return 0, 0
	}

	if !common.IsZero(mv.MoveX, mv.MoveY) {
		mv.MoveX, mv.MoveY = common.Normalize(mv.MoveX, mv.MoveY)
	}

	if mv.PushTime > 0 {
		return mv.PushX, mv.PushY
	}
	return mv.MoveX * mv.Speed, mv.MoveY * mv.Speed
}
