package system

import (
	"log"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/items"
)

// ItemLookup resolves item definitions by type.
type ItemLookup interface {
	FindItem(t component.ItemType) (*items.Definition, bool)
}

// PrefabSpawner instantiates a prefab into the world.
type PrefabSpawner interface {
	Spawn(w *ecs.World, prefab string) (ecs.Entity, error)
}

// CharacterModel is the movement/equipment controller for characters. Its
// operations are called by input, scripts, and the attack listener; invalid
// requests (unknown items, missing attach points, wrong slots) are ignored.
type CharacterModel struct {
	items   ItemLookup
	spawner PrefabSpawner
}

func NewCharacterModel(items ItemLookup, spawner PrefabSpawner) *CharacterModel {
	return &CharacterModel{items: items, spawner: spawner}
}

func movementOf(w *ecs.World, e ecs.Entity) (*component.CharacterMovement, bool) {
	mv, ok := ecs.Get(w, e, component.CharacterMovementComponent.Kind())
	if !ok || mv == nil {
		return nil, false
	}
	return mv, true
}

// SetDirection feeds a movement input. Nonzero input dismisses a pickup
// being shown. Input is ignored while frozen or attacking, replaced by the
// push vector while pushed, and at most one nonzero direction is accepted
// per simulation frame.
func (m *CharacterModel) SetDirection(w *ecs.World, e ecs.Entity, x, y float64) {
	mv, ok := movementOf(w, e)
	if !ok {
		return
	}

	if !common.IsZero(x, y) && mv.PickingUp != component.ItemNone {
		m.dismissPickup(w, e, mv)
	}

	if mv.Frozen || mv.Attacking {
		return
	}

	if mv.PushTime > 0 {
		mv.MoveX, mv.MoveY = mv.PushX, mv.PushY
		return
	}

	frame := clockFrame(w)
	if frame != 0 && mv.LastDirectionFrame == frame {
		return
	}

	mv.MoveX, mv.MoveY = x, y
	if !common.IsZero(x, y) {
		mv.FacingX, mv.FacingY = x, y
		mv.LastDirectionFrame = frame
	}
}

func (m *CharacterModel) dismissPickup(w *ecs.World, e ecs.Entity, mv *component.CharacterMovement) {
	item := mv.PickingUp
	mv.PickingUp = component.ItemNone
	m.SetFrozen(w, e, false, true)
	destroyVisual(w, &mv.PickupVisual)
	w.Events().Push(ecs.Event{Type: ecs.EventPickupDismissed, Entity: e, Data: item})
}

func (m *CharacterModel) Direction(w *ecs.World, e ecs.Entity) (float64, float64) {
	mv, ok := movementOf(w, e)
	if !ok {
		return 0, 0
	}
	return mv.MoveX, mv.MoveY
}

func (m *CharacterModel) FacingDirection(w *ecs.World, e ecs.Entity) (float64, float64) {
	mv, ok := movementOf(w, e)
	if !ok {
		return 0, 0
	}
	return mv.FacingX, mv.FacingY
}

// IsMoving is false while frozen even if a direction is held.
func (m *CharacterModel) IsMoving(w *ecs.World, e ecs.Entity) bool {
	mv, ok := movementOf(w, e)
	if !ok || mv.Frozen {
		return false
	}
	return !common.IsZero(mv.MoveX, mv.MoveY)
}

func (m *CharacterModel) IsFrozen(w *ecs.World, e ecs.Entity) bool {
	mv, ok := movementOf(w, e)
	return ok && mv.Frozen
}

func (m *CharacterModel) IsBeingPushed(w *ecs.World, e ecs.Entity) bool {
	mv, ok := movementOf(w, e)
	return ok && mv.PushTime > 0
}

// SetFrozen sets the frozen flag. With affectTime, freezing pauses the
// simulation clock one tick later and unfreezing resumes it at once,
// dropping any pause still pending.
func (m *CharacterModel) SetFrozen(w *ecs.World, e ecs.Entity, frozen, affectTime bool) {
	mv, ok := movementOf(w, e)
	if !ok {
		return
	}
	mv.Frozen = frozen

	if !affectTime {
		return
	}
	if frozen {
		RequestTimeScale(w, 0, 1)
	} else {
		RequestTimeScale(w, 1, 0)
	}
}

func (m *CharacterModel) EquipWeapon(w *ecs.World, e ecs.Entity, item component.ItemType) {
	m.equipItem(w, e, item, component.EquipSwordHand)
}

func (m *CharacterModel) EquipShield(w *ecs.World, e ecs.Entity, item component.ItemType) {
	m.equipItem(w, e, item, component.EquipShieldHand)
}

func (m *CharacterModel) equipItem(w *ecs.World, e ecs.Entity, item component.ItemType, pos component.EquipPosition) {
	points, ok := ecs.Get(w, e, component.AttachPointsComponent.Kind())
	if !ok || points == nil {
		return
	}
	point := points.Weapon
	if pos == component.EquipShieldHand {
		point = points.Shield
	}
	if point == nil {
		return
	}

	def, ok := m.findItem(item)
	if !ok || def.Equip != pos {
		return
	}

	eq, ok := ecs.Get(w, e, component.EquipmentComponent.Kind())
	if !ok || eq == nil {
		eq = &component.Equipment{}
		if err := ecs.Add(w, e, component.EquipmentComponent.Kind(), eq); err != nil {
			log.Printf("equip: entity=%v add equipment: %v", e, err)
			return
		}
	}

	slot, visual := &eq.Weapon, &eq.WeaponVisual
	if pos == component.EquipShieldHand {
		slot, visual = &eq.Shield, &eq.ShieldVisual
	}

	*slot = item
	destroyVisual(w, visual)
	*visual = uint64(m.spawnAttached(w, e, def, point, true))
}

// ShowItemPickup presents an item above the character: it faces down,
// freezes with a time pause, and holds the item until the next movement
// input.
func (m *CharacterModel) ShowItemPickup(w *ecs.World, e ecs.Entity, item component.ItemType) {
	points, ok := ecs.Get(w, e, component.AttachPointsComponent.Kind())
	if !ok || points == nil || points.Pickup == nil {
		return
	}
	def, ok := m.findItem(item)
	if !ok {
		return
	}
	mv, ok := movementOf(w, e)
	if !ok {
		return
	}

	m.SetDirection(w, e, common.DownX, common.DownY)
	mv.FacingX, mv.FacingY = common.DownX, common.DownY
	mv.MoveX, mv.MoveY = 0, 0
	m.SetFrozen(w, e, true, true)

	mv.PickingUp = item
	destroyVisual(w, &mv.PickupVisual)
	mv.PickupVisual = uint64(m.spawnAttached(w, e, def, points.Pickup, false))
	w.Events().Push(ecs.Event{Type: ecs.EventPickupShown, Entity: e, Data: item})
}

// PushCharacter forces the character along (x, y) for the given seconds.
// An attack in progress is ended and the attack listener is told it was
// interrupted.
func (m *CharacterModel) PushCharacter(w *ecs.World, e ecs.Entity, x, y, seconds float64) {
	mv, ok := movementOf(w, e)
	if !ok {
		return
	}
	if mv.Attacking {
		m.OnAttackFinished(w, e)
		w.Events().Push(ecs.Event{
			Type:   ecs.EventAttackFinished,
			Entity: e,
			Data:   ecs.AttackFinished{Interrupted: true},
		})
	}
	mv.PushX, mv.PushY = x, y
	mv.PushTime = seconds
}

func (m *CharacterModel) ItemBeingPickedUp(w *ecs.World, e ecs.Entity) component.ItemType {
	mv, ok := movementOf(w, e)
	if !ok {
		return component.ItemNone
	}
	return mv.PickingUp
}

func (m *CharacterModel) EquippedWeapon(w *ecs.World, e ecs.Entity) component.ItemType {
	eq, ok := ecs.Get(w, e, component.EquipmentComponent.Kind())
	if !ok || eq == nil {
		return component.ItemNone
	}
	return eq.Weapon
}

func (m *CharacterModel) EquippedShield(w *ecs.World, e ecs.Entity) component.ItemType {
	eq, ok := ecs.Get(w, e, component.EquipmentComponent.Kind())
	if !ok || eq == nil {
		return component.ItemNone
	}
	return eq.Shield
}

// CanAttack is false while attacking, without a weapon, or while pushed.
func (m *CharacterModel) CanAttack(w *ecs.World, e ecs.Entity) bool {
	mv, ok := movementOf(w, e)
	if !ok || mv.Attacking {
		return false
	}
	if m.EquippedWeapon(w, e) == component.ItemNone {
		return false
	}
	return mv.PushTime <= 0
}

func (m *CharacterModel) OnAttackStarted(w *ecs.World, e ecs.Entity) {
	if mv, ok := movementOf(w, e); ok {
		mv.Attacking = true
	}
}

func (m *CharacterModel) OnAttackFinished(w *ecs.World, e ecs.Entity) {
	if mv, ok := movementOf(w, e); ok {
		mv.Attacking = false
	}
}

func (m *CharacterModel) findItem(item component.ItemType) (*items.Definition, bool) {
	if m == nil || m.items == nil || item == component.ItemNone {
		return nil, false
	}
	def, ok := m.items.FindItem(item)
	if !ok || def == nil {
		return nil, false
	}
	return def, true
}

func (m *CharacterModel) spawnAttached(w *ecs.World, parent ecs.Entity, def *items.Definition, point *component.AttachPoint, mirror bool) ecs.Entity {
	if m.spawner == nil || def.Prefab == "" {
		return 0
	}
	visual, err := m.spawner.Spawn(w, def.Prefab)
	if err != nil {
		log.Printf("equip: entity=%v spawn %s for item %s: %v", parent, def.Prefab, def.Type, err)
		return 0
	}

	_ = ecs.Add(w, visual, component.ItemVisualTagComponent.Kind(), &component.ItemVisualTag{Item: def.Type})
	_ = ecs.Add(w, visual, component.AttachmentComponent.Kind(), &component.Attachment{
		Parent:  uint64(parent),
		OffsetX: point.OffsetX,
		OffsetY: point.OffsetY,
		Mirror:  mirror,
	})
	if point.Layer != 0 {
		_ = ecs.Add(w, visual, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: point.Layer})
	}
	if !mirror {
		_ = ecs.Add(w, visual, component.HoverComponent.Kind(), &component.Hover{})
	}
	snapAttachment(w, visual)
	return visual
}

func destroyVisual(w *ecs.World, ref *uint64) {
	if ref == nil || *ref == 0 {
		return
	}
	ecs.DestroyEntity(w, ecs.Entity(*ref))
	*ref = 0
}
