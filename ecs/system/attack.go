package system

import (
	"math"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// swingArc is how far the weapon visual rotates over one attack.
const swingArc = math.Pi * 0.75

// AttackSystem is the attack listener: it starts attacks on input when the
// model allows, ends them when the swing is over, and drops swings the model
// reports as interrupted.
type AttackSystem struct {
	model *CharacterModel
}

func NewAttackSystem(model *CharacterModel) *AttackSystem {
	return &AttackSystem{model: model}
}

func (s *AttackSystem) Update(w *ecs.World) {
	if s == nil || s.model == nil || w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventAttackFinished) {
		attack, ok := ecs.Get(w, evt.Entity, component.AttackComponent.Kind())
		if !ok {
			continue
		}
		attack.Remaining = 0
		s.setSwing(w, evt.Entity, 0)
	}

	paused := false
	if c := Clock(w); c != nil && c.TimeScale <= 0 {
		paused = true
	}

	ecs.ForEach2(w, component.AttackComponent.Kind(), component.CharacterMovementComponent.Kind(), func(e ecs.Entity, attack *component.Attack, mv *component.CharacterMovement) {
		if mv.Attacking {
			if paused {
				return
			}
			if attack.Remaining > 0 {
				attack.Remaining--
			}
			if attack.Remaining <= 0 {
				s.model.OnAttackFinished(w, e)
				s.setSwing(w, e, 0)
				return
			}
			s.setSwing(w, e, 1-float64(attack.Remaining)/float64(max(attack.Frames, 1)))
			return
		}

		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok || !input.AttackPressed || paused {
			return
		}
		if !s.model.CanAttack(w, e) {
			return
		}
		s.model.OnAttackStarted(w, e)
		attack.Remaining = max(attack.Frames, 1)
		s.setSwing(w, e, 0)
	})
}

// setSwing rotates the weapon visual through the swing arc.
func (s *AttackSystem) setSwing(w *ecs.World, e ecs.Entity, progress float64) {
	eq, ok := ecs.Get(w, e, component.EquipmentComponent.Kind())
	if !ok || eq.WeaponVisual == 0 {
		return
	}
	t, ok := ecs.Get(w, ecs.Entity(eq.WeaponVisual), component.TransformComponent.Kind())
	if !ok {
		return
	}
	angle := progress * swingArc
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && sprite.FacingLeft {
		angle = -angle
	}
	t.Rotation = angle
}
