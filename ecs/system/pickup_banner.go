package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// Banner is the on-screen text naming a held-up item. An empty name hides it.
type Banner interface {
	Show(name, description string)
}

// PickupBannerSystem keeps the banner in step with the player's pickups by
// consuming the pickup shown and dismissed events.
type PickupBannerSystem struct {
	banner Banner
	items  ItemLookup
}

func NewPickupBannerSystem(banner Banner, items ItemLookup) *PickupBannerSystem {
	return &PickupBannerSystem{banner: banner, items: items}
}

func (s *PickupBannerSystem) Update(w *ecs.World) {
	if s == nil || s.banner == nil || w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventPickupShown, ecs.EventPickupDismissed) {
		if !ecs.Has(w, evt.Entity, component.PlayerTagComponent.Kind()) {
			continue
		}
		if evt.Type == ecs.EventPickupDismissed {
			s.banner.Show("", "")
			continue
		}

		item, _ := evt.Data.(component.ItemType)
		if item == component.ItemNone {
			continue
		}
		if s.items != nil {
			if def, ok := s.items.FindItem(item); ok {
				s.banner.Show(def.Name, def.Description)
				continue
			}
		}
		s.banner.Show(string(item), "")
	}
}
