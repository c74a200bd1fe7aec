// Package loot generates the coins and items a creature leaves behind.
package loot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lawnchairsociety/lootforge/internal/coins"
	"github.com/lawnchairsociety/lootforge/internal/config"
	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/deterioration"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/logger"
	"github.com/lawnchairsociety/lootforge/internal/metrics"
	"github.com/lawnchairsociety/lootforge/internal/successrate"
	"github.com/lawnchairsociety/lootforge/internal/tables"
	"github.com/lawnchairsociety/lootforge/internal/treasure"
)

// Bundle is the loot generated for one creature.
type Bundle struct {
	RunID string
	Coins currency.Bundle
	Items []items.Stack

	// Pile is set when the creature is a treasure pile.
	Pile bool
}

// IsEmpty reports whether the bundle holds nothing.
func (b *Bundle) IsEmpty() bool {
	return b.Coins.IsEmpty() && len(b.Items) == 0
}

func (b *Bundle) String() string {
	switch {
	case b.IsEmpty():
		return "nothing"
	case len(b.Items) == 0:
		return b.Coins.String()
	case b.Coins.IsEmpty():
		return items.FormatStacks(b.Items)
	default:
		return b.Coins.String() + "; " + items.FormatStacks(b.Items)
	}
}

// Flags are the loot decisions derived from a creature's types.
type Flags struct {
	TreasureRolls int
	MinCoinFactor int
	HasTrinkets   bool
	Pile          bool
}

// Generator runs the full loot pipeline: coins, treasure conversion, table
// draws, ammunition and trinkets.
type Generator struct {
	cfg       *config.LootConfig
	roller    *dice.Roller
	evaluator *successrate.Evaluator
	coins     *coins.Generator
	converter *treasure.Converter
	drawer    tables.Drawer
	lookup    items.Lookup
	decay     *deterioration.Deteriorator
}

// NewGenerator creates a generator. drawer serves treasure and trinket
// tables and lookup resolves ammunition and damaged variants. A nil src uses
// a fresh random source.
func NewGenerator(cfg *config.LootConfig, drawer tables.Drawer, lookup items.Lookup, src dice.Source) (*Generator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if drawer == nil || lookup == nil {
		return nil, errors.New("loot generator needs a table drawer and an item lookup")
	}
	if src == nil {
		src = dice.NewSource()
	}

	tiers, err := treasure.TiersFromConfig(cfg.Treasure.Tiers)
	if err != nil {
		return nil, fmt.Errorf("treasure tiers: %w", err)
	}

	roller := dice.NewRoller(src)
	evaluator := successrate.NewEvaluator(src, nil)
	return &Generator{
		cfg:       cfg,
		roller:    roller,
		evaluator: evaluator,
		coins:     coins.NewGenerator(roller, evaluator, cfg.Coins.Percentage, cfg.Coins.MaxFactor),
		converter: treasure.NewConverter(tiers, src),
		drawer:    drawer,
		lookup:    lookup,
		decay:     deterioration.NewFromConfig(cfg.Deterioration, lookup, src),
	}, nil
}

func (g *Generator) log(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx)
}

// Flags derives the loot decisions for c. Creatures of a type that carries
// loot get one coin roll and trinkets; treasure piles get one roll per
// treasure level, each with at least that factor.
func (g *Generator) Flags(c *Creature) Flags {
	hasLoot := g.cfg.HasLoot(c.Types()...)
	level := c.TreasureLevel(g.cfg.Treasure.DefaultLevel)

	f := Flags{
		TreasureRolls: level,
		MinCoinFactor: level,
		HasTrinkets:   hasLoot,
		Pile:          level > 0,
	}
	if f.TreasureRolls == 0 && hasLoot {
		f.TreasureRolls = 1
	}
	return f
}

// GenerateLoot generates loot for c. Non-NPC creatures get an empty bundle.
// Missing tables and items are skipped; only collaborator failures are
// returned as errors.
func (g *Generator) GenerateLoot(ctx context.Context, c *Creature) (*Bundle, error) {
	ctx = logger.EnsureRunID(ctx)
	runID, _ := logger.RunIDFromContext(ctx)
	log := g.log(ctx)

	start := time.Now()
	defer func() {
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	}()

	bundle := &Bundle{RunID: runID, Coins: currency.NewBundle()}
	if c == nil || !c.IsNPC() {
		log.Warn("Skipping loot generation for non-NPC", "creature", c.String())
		metrics.LootGenerations.WithLabelValues(metrics.ResultSkipped).Inc()
		return bundle, nil
	}

	flags := g.Flags(c)
	bundle.Pile = flags.Pile
	if flags.TreasureRolls == 0 {
		log.Info("Skipping loot generation, creature type cannot have loot",
			"creature", c.Name, "types", c.Types(), "types_with_loot", g.cfg.TypesWithLoot.String())
	}

	var coinBundle currency.Bundle
	if flags.TreasureRolls > 0 {
		coinBundle = g.coins.Generate(c, flags.TreasureRolls, flags.MinCoinFactor)
	}

	remaining, rolls := g.converter.Convert(coinBundle, g.cfg.Treasure.ConversionPercentage)
	bundle.Coins = remaining

	treasures, err := g.drawTreasures(ctx, rolls)
	if err != nil {
		return nil, err
	}
	if len(treasures) > 0 {
		log.Info("Converted coins into treasure",
			"rate", g.cfg.Treasure.ConversionPercentage,
			"treasure", items.FormatStacks(treasures),
			"coins", remaining.String())
	}

	ammo := g.Ammo(ctx, c)

	var trinkets []items.Stack
	if flags.HasTrinkets {
		if trinkets, err = g.Trinkets(ctx); err != nil {
			return nil, err
		}
	}

	bundle.Items = items.MergeStacks(treasures, ammo, trinkets)

	metrics.LootGenerations.WithLabelValues(metrics.ResultGenerated).Inc()
	log.Info("Generated loot",
		"creature", c.Name,
		"cr", c.CR,
		"pile", bundle.Pile,
		"loot", bundle.String())
	return bundle, nil
}

func (g *Generator) drawTreasures(ctx context.Context, rolls treasure.Rolls) ([]items.Stack, error) {
	var stacks []items.Stack
	for _, tier := range g.converter.Tiers() {
		n := rolls[tier.ID]
		if n <= 0 {
			continue
		}
		drawn, err := g.draw(ctx, tier.ID, n)
		if err != nil {
			return nil, err
		}
		stacks = items.MergeStacks(stacks, drawn)
	}
	return stacks, nil
}

// draw draws from a table, treating a missing table as no result.
func (g *Generator) draw(ctx context.Context, tableID string, count int) ([]items.Stack, error) {
	drawn, err := g.drawer.Draw(ctx, tableID, count)
	if errors.Is(err, tables.ErrTableNotFound) {
		g.log(ctx).Warn("Table not found", "table", tableID, "rolls", count)
		metrics.LookupMisses.WithLabelValues(metrics.KindTable).Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to draw from table %s: %w", tableID, err)
	}
	return drawn, nil
}

// Trinkets draws between 0 and the configured maximum trinkets, each extra
// trinket half as likely as the previous one.
func (g *Generator) Trinkets(ctx context.Context) ([]items.Stack, error) {
	t := g.cfg.Trinkets
	amount := g.evaluator.Evaluate(t.Percentage, 0, t.Max)
	if amount < 1 {
		g.log(ctx).Debug("Skipping trinket generation", "chance", t.Percentage)
		return nil, nil
	}

	trinkets, err := g.draw(ctx, t.Table, amount)
	if err != nil {
		return nil, err
	}
	g.log(ctx).Debug("Generated trinkets",
		"amount", amount, "chance", t.Percentage, "max", t.Max, "trinkets", items.FormatStacks(trinkets))
	return trinkets, nil
}

// Deteriorate breaks and damages the items an NPC carries and replaces
// them with what survived. It returns the deterioration result.
func (g *Generator) Deteriorate(ctx context.Context, c *Creature) (deterioration.Result, error) {
	ctx = logger.EnsureRunID(ctx)
	if c == nil || !c.IsNPC() {
		return deterioration.Result{}, fmt.Errorf("cannot deteriorate items of non-NPC %s", c.String())
	}
	g.log(ctx).Info("Deteriorating items", "creature", c.Name, "items", items.FormatStacks(c.Items))

	res := g.decay.Deteriorate(ctx, c.Items)
	c.Items = res.Stacks
	return res, nil
}

// Repair swaps the damaged items an NPC carries for their undamaged
// versions and merges them into existing stacks. Items without an undamaged
// record stay damaged. It returns the number of units repaired.
func (g *Generator) Repair(ctx context.Context, c *Creature) (int, error) {
	ctx = logger.EnsureRunID(ctx)
	if c == nil || !c.IsNPC() {
		return 0, fmt.Errorf("cannot repair items of non-NPC %s", c.String())
	}

	decay := g.decay.Decay()
	repaired := 0
	var out []items.Stack
	for _, s := range c.Items {
		if !decay.IsDamaged(s.Item) {
			items.AddStack(&out, s)
			continue
		}
		fixed, err := decay.Fixed(ctx, s.Item)
		if err != nil && !errors.Is(err, items.ErrItemNotFound) {
			return 0, err
		}
		if err == nil {
			repaired += s.Quantity
		}
		items.AddStack(&out, items.Stack{Item: fixed, Quantity: s.Quantity})
	}

	c.Items = out
	if repaired > 0 {
		g.log(ctx).Info("Repaired items", "creature", c.Name, "units", repaired, "items", items.FormatStacks(c.Items))
	}
	return repaired, nil
}
