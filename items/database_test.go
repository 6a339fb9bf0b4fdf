package items

import (
	"errors"
	"testing"

	"github.com/milk9111/topdown/ecs/component"
)

func TestParse(t *testing.T) {
	db, err := Parse([]byte(`
items:
  - type: sword
    name: Iron Sword
    equip: sword_hand
    prefab: sword.yaml
  - type: shield
    equip: shield_hand
    prefab: shield.yaml
  - type: gem
    prefab: gem.yaml
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	cases := []struct {
		item   component.ItemType
		found  bool
		equip  component.EquipPosition
		name   string
		prefab string
	}{
		{"sword", true, component.EquipSwordHand, "Iron Sword", "sword.yaml"},
		{"shield", true, component.EquipShieldHand, "shield", "shield.yaml"},
		{"gem", true, component.EquipNone, "gem", "gem.yaml"},
		{"axe", false, component.EquipNone, "", ""},
		{component.ItemNone, false, component.EquipNone, "", ""},
	}
	for _, c := range cases {
		t.Run(string(c.item), func(t *testing.T) {
			def, ok := db.FindItem(c.item)
			if ok != c.found {
				t.Fatalf("FindItem(%q) found=%v, want %v", c.item, ok, c.found)
			}
			if !ok {
				return
			}
			if def.Equip != c.equip || def.Name != c.name || def.Prefab != c.prefab {
				t.Fatalf("unexpected definition %+v", def)
			}
		})
	}

	types := db.Types()
	if len(types) != 3 || types[0] != "sword" || types[2] != "gem" {
		t.Fatalf("unexpected type order %v", types)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"duplicate", "items:\n  - type: a\n  - type: a\n", ErrDuplicateItem},
		{"missing_type", "items:\n  - name: nothing\n", nil},
		{"bad_equip", "items:\n  - type: a\n    equip: left_foot\n", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.src))
			if err == nil {
				t.Fatalf("expected error")
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestLoadShippedTable(t *testing.T) {
	db, err := Load(DefaultFile)
	if err != nil {
		t.Fatalf("load shipped items: %v", err)
	}
	for _, item := range db.Types() {
		def, _ := db.FindItem(item)
		if def.Prefab == "" {
			t.Fatalf("item %q has no prefab", item)
		}
	}
	if _, ok := db.FindItem("sword"); !ok {
		t.Fatalf("expected shipped table to define sword")
	}
}
