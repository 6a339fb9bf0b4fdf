package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/items"
)

// ItemTable is the part of the item database checked at startup.
type ItemTable interface {
	Types() []component.ItemType
	FindItem(t component.ItemType) (*items.Definition, bool)
}

// ValidateItemPrefabs builds every item's prefab into a scratch world so a
// broken item fails at startup instead of the first time it is equipped.
func ValidateItemPrefabs(table ItemTable) error {
	if table == nil {
		return nil
	}
	scratch := ecs.NewWorld()
	var errs []error
	for _, t := range table.Types() {
		def, ok := table.FindItem(t)
		if !ok {
			errs = append(errs, fmt.Errorf("item %q: listed but not defined", t))
			continue
		}
		if _, err := BuildEntity(scratch, def.Prefab); err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w", t, err))
		}
	}
	return errors.Join(errs...)
}
