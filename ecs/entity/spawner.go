package entity

import "github.com/milk9111/topdown/ecs"

// PrefabSpawner builds entities from prefab files. The zero value loads
// prefabs through the prefabs package.
type PrefabSpawner struct {
	// Build overrides BuildEntity, mostly for tests.
	Build func(w *ecs.World, prefab string) (ecs.Entity, error)
}

func NewPrefabSpawner() *PrefabSpawner {
	return &PrefabSpawner{}
}

func (s *PrefabSpawner) Spawn(w *ecs.World, prefab string) (ecs.Entity, error) {
	if s != nil && s.Build != nil {
		return s.Build(w, prefab)
	}
	return BuildEntity(w, prefab)
}
