package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// PlayerControllerSystem feeds the player's input into the character model.
// While a pickup is shown, a direction held from before the pickup is not
// forwarded: the stick or keys must return to neutral once before movement
// can dismiss it.
type PlayerControllerSystem struct {
	model    *CharacterModel
	released map[ecs.Entity]bool
}

func NewPlayerControllerSystem(model *CharacterModel) *PlayerControllerSystem {
	return &PlayerControllerSystem{model: model, released: make(map[ecs.Entity]bool)}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || p.model == nil || w == nil {
		return
	}

	for e := range p.released {
		if !ecs.IsAlive(w, e) {
			delete(p.released, e)
		}
	}

	for _, e := range w.Query(
		component.PlayerTagComponent,
		component.InputComponent,
		component.CharacterMovementComponent,
	) {
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}

		if p.model.ItemBeingPickedUp(w, e) == component.ItemNone {
			delete(p.released, e)
		} else if !p.released[e] {
			if common.IsZero(input.MoveX, input.MoveY) {
				p.released[e] = true
			}
			continue
		}

		p.model.SetDirection(w, e, input.MoveX, input.MoveY)
	}
}
