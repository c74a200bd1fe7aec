package items

import (
	"fmt"
	"strings"
)

// ItemType is the category of an item. Two items are the same item only
// when both name and type match.
type ItemType int

const (
	Loot ItemType = iota
	Weapon
	Equipment
	Consumable
	Backpack
	Tool

	// AnyType matches every type in lookups.
	AnyType ItemType = -1
)

// String returns the string representation of an ItemType
func (t ItemType) String() string {
	switch t {
	case Weapon:
		return "weapon"
	case Equipment:
		return "equipment"
	case Consumable:
		return "consumable"
	case Backpack:
		return "backpack"
	case Tool:
		return "tool"
	case Loot:
		return "loot"
	case AnyType:
		return "any"
	default:
		return "unknown"
	}
}

// ParseItemType converts a string to an ItemType, case-insensitively.
// An empty string means AnyType.
func ParseItemType(s string) (ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weapon":
		return Weapon, nil
	case "equipment", "armor":
		return Equipment, nil
	case "consumable", "potion", "food", "drink":
		return Consumable, nil
	case "backpack", "container":
		return Backpack, nil
	case "tool":
		return Tool, nil
	case "loot", "misc", "treasure":
		return Loot, nil
	case "", "any":
		return AnyType, nil
	default:
		return Loot, fmt.Errorf("unknown item type %q", s)
	}
}

// Matches reports whether t satisfies the wanted type.
func (t ItemType) Matches(want ItemType) bool {
	return want == AnyType || t == want
}

func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(text []byte) error {
	parsed, err := ParseItemType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ArmorType is the armor category that decides how AC decays.
type ArmorType string

const (
	ArmorLight  ArmorType = "light"
	ArmorMedium ArmorType = "medium"
	ArmorHeavy  ArmorType = "heavy"
	ArmorShield ArmorType = "shield"
)

// IsBodyArmor returns true for light, medium and heavy armor
func (a ArmorType) IsBodyArmor() bool {
	return a == ArmorLight || a == ArmorMedium || a == ArmorHeavy
}
