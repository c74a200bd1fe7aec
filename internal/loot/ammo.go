package loot

import (
	"context"
	"strings"

	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/metrics"
)

// AmmoRule gives ammunition to creatures carrying matching weapons. An empty
// Ammo means the weapon is its own ammunition.
type AmmoRule struct {
	Weapons  []string
	Ammo     string
	Quantity dice.Expr
}

// AmmoRules are checked in order; a weapon uses the first rule it matches.
var AmmoRules = []AmmoRule{
	{Weapons: []string{"shortbow", "longbow", "oathbow"}, Ammo: "Arrow", Quantity: dice.MustParse("4d3-5")},
	{Weapons: []string{"crossbow"}, Ammo: "Crossbow Bolt", Quantity: dice.MustParse("4d3-5")},
	{Weapons: []string{"blowgun"}, Ammo: "Blowgun Needle", Quantity: dice.MustParse("4d3-5")},
	{Weapons: []string{"sling"}, Ammo: "Sling Bullet", Quantity: dice.MustParse("4d3")},
	{Weapons: []string{"dart", "javelin"}, Quantity: dice.MustParse("4d3-8")},
}

// Matches reports whether the item name contains one of the rule's weapons.
func (r AmmoRule) Matches(name string) bool {
	name = strings.ToLower(name)
	for _, w := range r.Weapons {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func ammoRuleFor(name string) (AmmoRule, bool) {
	for _, r := range AmmoRules {
		if r.Matches(name) {
			return r, true
		}
	}
	return AmmoRule{}, false
}

// Ammo rolls ammunition for every ranged weapon the creature carries.
// Quantities below zero count as none.
func (g *Generator) Ammo(ctx context.Context, c *Creature) []items.Stack {
	log := g.log(ctx)
	var ammo []items.Stack

	for _, s := range c.Items {
		if s.Item == nil {
			continue
		}
		rule, ok := ammoRuleFor(s.Item.Name)
		if !ok {
			continue
		}

		quantity := g.roller.RollExpr(rule.Quantity)
		if quantity <= 0 {
			continue
		}

		item := s.Item
		if rule.Ammo != "" {
			found, err := g.lookup.FindItem(ctx, rule.Ammo, items.AnyType)
			if err != nil {
				log.Warn("Ammunition not found", "weapon", s.Item.Name, "ammo", rule.Ammo, "error", err)
				metrics.LookupMisses.WithLabelValues(metrics.KindItem).Inc()
				continue
			}
			item = found
		}
		items.AddStack(&ammo, items.Stack{Item: item, Quantity: quantity})
	}

	if len(ammo) > 0 {
		log.Debug("Generated ammo", "creature", c.Name, "ammo", items.FormatStacks(ammo))
	}
	return ammo
}
