package system

import (
	"slices"
	"testing"

	"github.com/milk9111/topdown/ecs/component"
)

func TestItemVisualsTrackSpawnedItems(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newCharacter(w, true)

	steps := []struct {
		name string
		do   func()
		want []component.ItemType
	}{
		{name: "empty", do: func() {}},
		{
			name: "equipped and shown",
			do: func() {
				m.EquipWeapon(w, player, "sword")
				m.EquipShield(w, player, "shield")
				m.ShowItemPickup(w, player, "gem")
			},
			want: []component.ItemType{"gem", "shield", "sword"},
		},
		{
			name: "weapon swapped",
			do:   func() { m.EquipWeapon(w, player, "axe") },
			want: []component.ItemType{"axe", "gem", "shield"},
		},
		{
			name: "pickup dismissed",
			do: func() {
				nextFrame(w)
				m.SetDirection(w, player, 1, 0)
			},
			want: []component.ItemType{"axe", "shield"},
		},
	}

	for _, step := range steps {
		step.do()
		if got := itemVisuals(w); !slices.Equal(got, step.want) {
			t.Fatalf("%s: expected visuals %v, got %v", step.name, step.want, got)
		}
	}
}
