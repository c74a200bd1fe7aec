package items

import (
	"fmt"

	"github.com/lawnchairsociety/lootforge/internal/currency"
)

// Item is a canonical item record.
type Item struct {
	ID          string // catalog key (e.g., "longsword")
	Name        string
	Description string
	Weight      float64
	Type        ItemType
	Price       currency.Price
	Rarity      string
	Magic       bool

	// Weapon fields (optional)
	Damage Damage

	// Armor fields (optional)
	Armor   *Armor
	Stealth bool // disadvantage on stealth checks
}

// DamagePart is one damage formula and its damage kind, e.g. {"1d8 + @mod", "slashing"}.
type DamagePart struct {
	Formula string `yaml:"formula" json:"formula"`
	Kind    string `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Damage holds every damage formula of a weapon.
type Damage struct {
	Parts     []DamagePart `yaml:"parts,omitempty" json:"parts,omitempty"`
	Versatile string       `yaml:"versatile,omitempty" json:"versatile,omitempty"`
}

// IsZero reports whether the item deals no damage.
func (d Damage) IsZero() bool {
	return len(d.Parts) == 0 && d.Versatile == ""
}

// Armor holds armor class data.
type Armor struct {
	Type  ArmorType `yaml:"type" json:"type"`
	Value int       `yaml:"value" json:"value"`
	// Dex is the maximum Dexterity bonus. nil means unlimited.
	Dex *int `yaml:"dex,omitempty" json:"dex,omitempty"`
}

// NewItem creates a new item with the given properties
func NewItem(name string, itemType ItemType, price currency.Price) *Item {
	return &Item{
		Name:  name,
		Type:  itemType,
		Price: price,
	}
}

// NewWeapon creates a new weapon item
func NewWeapon(name string, price currency.Price, parts ...DamagePart) *Item {
	item := NewItem(name, Weapon, price)
	item.Damage.Parts = parts
	return item
}

// NewArmor creates a new armor item. Armor is equipment in the catalog.
func NewArmor(name string, price currency.Price, armorType ArmorType, ac int, dex *int) *Item {
	item := NewItem(name, Equipment, price)
	item.Armor = &Armor{Type: armorType, Value: ac, Dex: dex}
	return item
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	if i.Damage.Parts != nil {
		c.Damage.Parts = append([]DamagePart(nil), i.Damage.Parts...)
	}
	if i.Armor != nil {
		armor := *i.Armor
		if i.Armor.Dex != nil {
			dex := *i.Armor.Dex
			armor.Dex = &dex
		}
		c.Armor = &armor
	}
	return &c
}

// IsShield returns true if the item is a shield
func (i *Item) IsShield() bool {
	return i.Armor != nil && i.Armor.Type == ArmorShield
}

// String returns a formatted string representation of the item
func (i *Item) String() string {
	return fmt.Sprintf("%s (%s, %s)", i.Name, i.Type, i.Price)
}

// SameItem reports whether two items are the same item: equal name and type.
func SameItem(a, b *Item) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Name == b.Name && a.Type == b.Type
}

// IntPtr is a helper for optional integer fields.
func IntPtr(v int) *int {
	return &v
}
