package items

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/logger"
)

// DefaultDamagedSuffix is appended to the name of damaged items.
const DefaultDamagedSuffix = " (damaged)"

// Decay derives damaged variants of items. PriceFactor and UtilityFactor
// are the fractions of price and of damage/armor a damaged item keeps.
type Decay struct {
	Suffix        string
	PriceFactor   float64
	UtilityFactor float64

	// Lookup is consulted for existing damaged or repaired copies. Optional.
	Lookup Lookup
}

// NewDecay creates a Decay from loss percentages (0-100).
func NewDecay(suffix string, priceLossPercent, utilityLossPercent int, lookup Lookup) *Decay {
	if suffix == "" {
		suffix = DefaultDamagedSuffix
	}
	return &Decay{
		Suffix:        suffix,
		PriceFactor:   float64(100-priceLossPercent) / 100,
		UtilityFactor: float64(100-utilityLossPercent) / 100,
		Lookup:        lookup,
	}
}

// IsDamaged reports whether the item is a damaged variant.
func (d *Decay) IsDamaged(item *Item) bool {
	return item != nil && strings.HasSuffix(item.Name, d.Suffix)
}

// BaseName strips the damaged suffix from name.
func (d *Decay) BaseName(name string) string {
	return strings.TrimSuffix(name, d.Suffix)
}

// DamagedName returns the name of the damaged variant.
func (d *Decay) DamagedName(name string) string {
	return d.BaseName(name) + d.Suffix
}

// Damaged returns the damaged variant of item. The original is never
// modified. An already damaged item is returned as is.
func (d *Decay) Damaged(item *Item) *Item {
	if item == nil || d.IsDamaged(item) {
		return item
	}

	damaged := item.Clone()
	damaged.Name = d.DamagedName(item.Name)
	if item.ID != "" {
		damaged.ID = item.ID + "_damaged"
	}

	damaged.Price = currency.ClosestStandardPrice(item.Price.Scale(decimal.NewFromFloat(d.PriceFactor)))

	f := d.UtilityFactor
	for i, part := range damaged.Damage.Parts {
		damaged.Damage.Parts[i].Formula = dice.ParseFormula(part.Formula).Scale(f).String()
	}
	if damaged.Damage.Versatile != "" {
		damaged.Damage.Versatile = dice.ParseFormula(damaged.Damage.Versatile).Scale(f).String()
	}

	if armor := damaged.Armor; armor != nil {
		switch {
		case armor.Type.IsBodyArmor():
			armor.Value = 10 + int(math.Floor(f*float64(armor.Value-10)))
			dex := 10
			if armor.Dex != nil {
				dex = *armor.Dex
			}
			armor.Dex = IntPtr(int(math.Floor(f * float64(dex))))
			damaged.Stealth = damaged.Stealth || f < 0.5
		case armor.Type == ArmorShield:
			armor.Value = int(math.Floor(f * float64(armor.Value)))
		}
	}

	logger.Debug("Derived damaged item",
		"item", item.Name,
		"price", damaged.Price.String(),
		"old_price", item.Price.String())

	return damaged
}

// Resolve returns the damaged variant of item, preferring an existing
// catalog entry with the damaged name over deriving a new one.
func (d *Decay) Resolve(ctx context.Context, item *Item) *Item {
	if item == nil || d.IsDamaged(item) {
		return item
	}
	if d.Lookup != nil {
		found, err := d.Lookup.FindItem(ctx, d.DamagedName(item.Name), item.Type)
		if err == nil {
			return found
		}
		if !errors.Is(err, ErrItemNotFound) {
			logger.FromContext(ctx).Warn("Damaged item lookup failed", "item", item.Name, "error", err)
		}
	}
	return d.Damaged(item)
}

// Fixed returns the undamaged version of item by looking up its base name.
// If the item is not damaged it is returned unchanged. When no undamaged
// record exists the damaged item is returned with ErrItemNotFound.
func (d *Decay) Fixed(ctx context.Context, item *Item) (*Item, error) {
	if !d.IsDamaged(item) {
		return item, nil
	}
	if d.Lookup == nil {
		return item, NotFound(d.BaseName(item.Name), item.Type)
	}

	found, err := d.Lookup.FindItem(ctx, d.BaseName(item.Name), item.Type)
	if err != nil {
		logger.FromContext(ctx).Warn("Unable to fix item", "item", item.Name, "error", err)
		return item, err
	}
	return found, nil
}
