package system

import (
	"errors"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/items"
)

type stubItems map[component.ItemType]*items.Definition

func (s stubItems) FindItem(t component.ItemType) (*items.Definition, bool) {
	def, ok := s[t]
	return def, ok
}

func testItems() stubItems {
	return stubItems{
		"sword":  {Type: "sword", Name: "Sword", Equip: component.EquipSwordHand, Prefab: "sword.yaml"},
		"axe":    {Type: "axe", Name: "Axe", Equip: component.EquipSwordHand, Prefab: "axe.yaml"},
		"shield": {Type: "shield", Name: "Shield", Equip: component.EquipShieldHand, Prefab: "shield.yaml"},
		"gem":    {Type: "gem", Name: "Gem", Equip: component.EquipNone, Prefab: "gem.yaml"},
		"broken": {Type: "broken", Name: "Broken", Equip: component.EquipSwordHand, Prefab: "missing.yaml"},
	}
}

type stubSpawner struct {
	spawned []string
}

func (s *stubSpawner) Spawn(w *ecs.World, prefab string) (ecs.Entity, error) {
	if prefab == "missing.yaml" {
		return 0, errors.New("no such prefab")
	}
	s.spawned = append(s.spawned, prefab)
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: 4, Height: 4})
	return e, nil
}

// newTestWorld returns a world whose clock is on frame 1.
func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	c := EnsureClock(w, DefaultTPS, DefaultFixedHz)
	c.Frame = 1
	return w
}

func newTestModel() (*CharacterModel, *stubSpawner) {
	spawner := &stubSpawner{}
	return NewCharacterModel(testItems(), spawner), spawner
}

// newCharacter builds a character at (100,100) facing down. Without points
// it has no attach points at all.
func newCharacter(w *ecs.World, points bool) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 100, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, e, component.CharacterMovementComponent.Kind(), &component.CharacterMovement{Speed: 100, FacingY: 1})
	_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	_ = ecs.Add(w, e, component.EquipmentComponent.Kind(), &component.Equipment{})
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: 8, Height: 8})
	if points {
		_ = ecs.Add(w, e, component.AttachPointsComponent.Kind(), &component.AttachPoints{
			Weapon: &component.AttachPoint{OffsetX: 10, OffsetY: 2, Layer: 11},
			Shield: &component.AttachPoint{OffsetX: -10, OffsetY: 2, Layer: 11},
			Pickup: &component.AttachPoint{OffsetY: -20, Layer: 20},
		})
	}
	return e
}

func movement(w *ecs.World, e ecs.Entity) *component.CharacterMovement {
	mv, _ := ecs.Get(w, e, component.CharacterMovementComponent.Kind())
	return mv
}

func nextFrame(w *ecs.World) {
	Clock(w).Frame++
}
