package component

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ItemType identifies an item definition in the item database.
type ItemType string

// ItemNone is the empty slot.
const ItemNone ItemType = ""

// EquipPosition is the body attach point an item binds to when equipped.
type EquipPosition int

const (
	EquipNone EquipPosition = iota
	EquipSwordHand
	EquipShieldHand
)

func (p EquipPosition) String() string {
	switch p {
	case EquipSwordHand:
		return "sword_hand"
	case EquipShieldHand:
		return "shield_hand"
	default:
		return "none"
	}
}

// ParseEquipPosition accepts the names produced by String.
func ParseEquipPosition(s string) (EquipPosition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EquipNone, nil
	case "sword_hand", "weapon":
		return EquipSwordHand, nil
	case "shield_hand", "shield":
		return EquipShieldHand, nil
	}
	return EquipNone, fmt.Errorf("unknown equip position %q", s)
}

func (p *EquipPosition) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("equip position must be a string")
	}
	parsed, err := ParseEquipPosition(value.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
