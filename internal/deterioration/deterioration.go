// Package deterioration breaks and damages the items a creature carried.
package deterioration

import (
	"context"

	"github.com/lawnchairsociety/lootforge/internal/config"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/logger"
	"github.com/lawnchairsociety/lootforge/internal/metrics"
)

// Policy decides which items can break or be damaged and how likely it is.
type Policy struct {
	// BreakChance and DamageChance are compared against the same per-unit
	// roll in [0,100), break first.
	BreakChance  int
	DamageChance int

	Breakable  config.StringList
	Damageable config.StringList

	// BreakableMagic allows magic items to break or be damaged.
	BreakableMagic bool
}

// PolicyFromConfig builds a Policy from deterioration settings.
func PolicyFromConfig(cfg config.DeteriorationConfig) Policy {
	return Policy{
		BreakChance:    cfg.BreakChance,
		DamageChance:   cfg.DamageChance,
		Breakable:      cfg.BreakableTypes,
		Damageable:     cfg.DamageableTypes,
		BreakableMagic: cfg.BreakableMagicItems,
	}
}

// CanBreak reports whether units of item may be broken.
func (p Policy) CanBreak(item *items.Item) bool {
	return item != nil && p.Breakable.Contains(item.Type.String()) && (p.BreakableMagic || !item.Magic)
}

// CanDamage reports whether units of item may be damaged.
func (p Policy) CanDamage(item *items.Item) bool {
	return item != nil && p.Damageable.Contains(item.Type.String()) && (p.BreakableMagic || !item.Magic)
}

// Outcome is what happened to the units of one stack.
type Outcome struct {
	Surviving int
	Damaged   int
	Broken    int
	Destroyed int
}

// Changed reports whether any unit was lost.
func (o Outcome) Changed() bool {
	return o.Damaged+o.Broken+o.Destroyed > 0
}

// Deteriorator applies a Policy to stacks of items.
type Deteriorator struct {
	Policy
	decay *items.Decay
	src   dice.Source
}

// New creates a Deteriorator. decay derives damaged variants; a nil src
// uses a fresh random source.
func New(policy Policy, decay *items.Decay, src dice.Source) *Deteriorator {
	if src == nil {
		src = dice.NewSource()
	}
	if decay == nil {
		decay = items.NewDecay(items.DefaultDamagedSuffix, 0, 0, nil)
	}
	return &Deteriorator{Policy: policy, decay: decay, src: src}
}

// NewFromConfig creates a Deteriorator from settings. lookup is used to find
// existing damaged variants and may be nil.
func NewFromConfig(cfg config.DeteriorationConfig, lookup items.Lookup, src dice.Source) *Deteriorator {
	decay := items.NewDecay(cfg.DamagedSuffix, cfg.PriceLossPercentage, cfg.UtilityLossPercentage, lookup)
	return New(PolicyFromConfig(cfg), decay, src)
}

// Decay returns the transform used for damaged variants.
func (d *Deteriorator) Decay() *items.Decay {
	return d.decay
}

// BreakStack rolls once per unit of item. A roll below BreakChance breaks a
// breakable unit; otherwise a roll below DamageChance damages a damageable
// unit, and a unit that was already damaged is destroyed instead.
func (d *Deteriorator) BreakStack(item *items.Item, quantity int) Outcome {
	if quantity <= 0 {
		return Outcome{}
	}
	out := Outcome{Surviving: quantity}

	canBreak := d.CanBreak(item)
	canDamage := d.CanDamage(item)
	if !canBreak && !canDamage {
		return out
	}
	alreadyDamaged := d.decay.IsDamaged(item)

	for i := 0; i < quantity; i++ {
		roll := d.src.Float64() * 100
		switch {
		case roll < float64(d.BreakChance) && canBreak:
			out.Broken++
		case roll < float64(d.DamageChance) && canDamage:
			if alreadyDamaged {
				out.Destroyed++
			} else {
				out.Damaged++
			}
		default:
			continue
		}
		out.Surviving--
	}

	if out.Changed() {
		logger.Debug("Item stack deteriorated",
			"item", item.Name,
			"quantity", quantity,
			"surviving", out.Surviving,
			"broken", out.Broken,
			"damaged", out.Damaged,
			"destroyed", out.Destroyed)
	}
	return out
}

// Result is a deteriorated stack list.
type Result struct {
	// Stacks holds every stack that still has units, damaged variants merged
	// into existing stacks of the same item.
	Stacks []items.Stack
	// Removed lists the input stacks left with no units, with their
	// original quantities.
	Removed []items.Stack

	Broken    int
	Damaged   int
	Destroyed int
}

// Deteriorate runs BreakStack over every stack and materializes damaged
// units as damaged variants. The input slice is not modified.
func (d *Deteriorator) Deteriorate(ctx context.Context, stacks []items.Stack) Result {
	log := logger.FromContext(ctx)
	var res Result

	working := make([]items.Stack, 0, len(stacks))
	damaged := make([]items.Stack, 0)
	for _, s := range stacks {
		if s.Item == nil {
			continue
		}
		out := d.BreakStack(s.Item, s.Quantity)
		res.Broken += out.Broken
		res.Damaged += out.Damaged
		res.Destroyed += out.Destroyed

		working = append(working, items.Stack{Item: s.Item, Quantity: out.Surviving})
		if out.Damaged > 0 {
			damaged = append(damaged, items.Stack{Item: s.Item, Quantity: out.Damaged})
		}
	}

	inputs := len(working)
	for _, s := range damaged {
		variant := d.decay.Resolve(ctx, s.Item)
		if i, ok := items.IndexOf(working, variant); ok {
			working[i].Quantity += s.Quantity
			continue
		}
		working = append(working, items.Stack{Item: variant, Quantity: s.Quantity})
	}

	for i, s := range working {
		if s.Quantity > 0 {
			res.Stacks = append(res.Stacks, s)
			continue
		}
		if i < inputs {
			res.Removed = append(res.Removed, items.Stack{Item: s.Item, Quantity: originalQuantity(stacks, s.Item)})
		}
	}

	metrics.RecordDeterioration(res.Broken, res.Damaged, res.Destroyed)
	log.Info("Deteriorated items",
		"stacks", len(stacks),
		"remaining", len(res.Stacks),
		"removed", len(res.Removed),
		"broken", res.Broken,
		"damaged", res.Damaged,
		"destroyed", res.Destroyed)
	return res
}

func originalQuantity(stacks []items.Stack, item *items.Item) int {
	total := 0
	for _, s := range stacks {
		if items.SameItem(s.Item, item) {
			total += s.Quantity
		}
	}
	return total
}
