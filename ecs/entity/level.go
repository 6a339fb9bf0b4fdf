package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/levels"
)

// LoadLevelToWorld builds every entity a level places. Level props are
// merged over the prefab's script params. On error the entities built so far
// are destroyed.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("load level: world is nil")
	}
	if lvl == nil {
		return nil, fmt.Errorf("load level: level is nil")
	}

	built := make([]ecs.Entity, 0, len(lvl.Entities))
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range built {
			ecs.DestroyEntity(w, e)
		}
		return nil, err
	}

	for i, placed := range lvl.Entities {
		if placed.Prefab == "" {
			return fail(fmt.Errorf("load level: entity %d has no prefab", i))
		}
		e, err := BuildEntity(w, placed.Prefab)
		if err != nil {
			return fail(fmt.Errorf("load level: entity %d: %w", i, err))
		}
		built = append(built, e)

		if err := SetEntityTransform(w, e, placed.X, placed.Y, 0); err != nil {
			return fail(fmt.Errorf("load level: entity %d: set transform: %w", i, err))
		}
		applyProps(w, e, placed.Props)
	}

	return built, nil
}

func applyProps(w *ecs.World, e ecs.Entity, props map[string]any) {
	if len(props) == 0 {
		return
	}
	script, ok := ecs.Get(w, e, component.ScriptComponent.Kind())
	if !ok || script == nil {
		return
	}
	if script.Params == nil {
		script.Params = make(map[string]any, len(props))
	}
	for k, v := range props {
		script.Params[k] = v
	}
}
