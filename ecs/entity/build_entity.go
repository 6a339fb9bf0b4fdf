package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":         addPlayerTag,
	"input":              addInput,
	"transform":          addTransform,
	"sprite":             addSprite,
	"render_layer":       addRenderLayer,
	"physics_body":       addPhysicsBody,
	"character_movement": addCharacterMovement,
	"equipment":          addEquipment,
	"attack":             addAttack,
	"attach_points":      addAttachPoints,
	"script":             addScript,
}

// transform comes before physics_body so bodies are created in place.
var componentBuildOrder = []string{
	"player_tag",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"physics_body",
	"character_movement",
	"equipment",
	"attack",
	"attach_points",
	"script",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("sprite size must be positive, got %dx%d", spec.Width, spec.Height)
	}

	sprite := component.Sprite{
		Width:      spec.Width,
		Height:     spec.Height,
		OriginX:    spec.OriginX,
		OriginY:    spec.OriginY,
		FacingLeft: spec.FacingLeft,
	}
	if spec.Color != nil {
		sprite.Color = spec.Color.Color
	}
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOrigin {
		sprite.OriginX = float64(spec.Width) / 2
		sprite.OriginY = float64(spec.Height) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 {
		if spec.Width <= 0 {
			spec.Width = 32
		}
		if spec.Height <= 0 {
			spec.Height = 32
		}
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Radius:   spec.Radius,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Static:   spec.Static,
		Sensor:   spec.Sensor,
	})
}

type characterMovementSpec = prefabs.CharacterMovementComponentSpec

func addCharacterMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterMovementSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character movement spec: %w", err)
	}
	if spec.FacingX == 0 && spec.FacingY == 0 {
		spec.FacingY = 1
	}
	if err := ecs.Add(w, e, component.CharacterMovementComponent.Kind(), &component.CharacterMovement{
		Speed:   spec.Speed,
		FacingX: spec.FacingX,
		FacingY: spec.FacingY,
	}); err != nil {
		return err
	}
	if ecs.Has(w, e, component.VelocityComponent.Kind()) {
		return nil
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

type equipmentSpec = prefabs.EquipmentComponentSpec

// addEquipment records starting items only. Their visuals are spawned by the
// character model once the entity is complete.
func addEquipment(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[equipmentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode equipment spec: %w", err)
	}
	return ecs.Add(w, e, component.EquipmentComponent.Kind(), &component.Equipment{
		Weapon: component.ItemType(spec.Weapon),
		Shield: component.ItemType(spec.Shield),
	})
}

type attackSpec = prefabs.AttackComponentSpec

func addAttack(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[attackSpec](raw)
	if err != nil {
		return fmt.Errorf("decode attack spec: %w", err)
	}
	if spec.Frames <= 0 {
		spec.Frames = 15
	}
	return ecs.Add(w, e, component.AttackComponent.Kind(), &component.Attack{Frames: spec.Frames})
}

type attachPointsSpec = prefabs.AttachPointsComponentSpec

func addAttachPoints(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[attachPointsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode attach points spec: %w", err)
	}
	return ecs.Add(w, e, component.AttachPointsComponent.Kind(), &component.AttachPoints{
		Weapon: attachPointFromSpec(spec.Weapon),
		Shield: attachPointFromSpec(spec.Shield),
		Pickup: attachPointFromSpec(spec.Pickup),
	})
}

func attachPointFromSpec(spec *prefabs.AttachPointSpec) *component.AttachPoint {
	if spec == nil {
		return nil
	}
	return &component.AttachPoint{OffsetX: spec.OffsetX, OffsetY: spec.OffsetY, Layer: spec.Layer}
}

type scriptSpec = prefabs.ScriptComponentSpec

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("script path is required")
	}
	params := make(map[string]any, len(spec.Params))
	for k, v := range spec.Params {
		params[k] = v
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: spec.Path, Params: params})
}
