package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/logger"
	"github.com/lawnchairsociety/lootforge/internal/metrics"
)

// Drawer draws results from a named table.
type Drawer interface {
	Draw(ctx context.Context, tableID string, count int) ([]items.Stack, error)
}

// WeightedDrawer draws entries with probability proportional to their
// weight and resolves them through an item lookup.
type WeightedDrawer struct {
	tables Source
	lookup items.Lookup
	roller *dice.Roller
}

// NewWeightedDrawer creates a drawer over tables, resolving entries with
// lookup. A nil src uses a fresh random source.
func NewWeightedDrawer(tables Source, lookup items.Lookup, src dice.Source) *WeightedDrawer {
	return &WeightedDrawer{
		tables: tables,
		lookup: lookup,
		roller: dice.NewRoller(src),
	}
}

// Draw draws count results from the table, merging repeated items into one
// stack. Entries whose item cannot be found are skipped with a warning.
func (d *WeightedDrawer) Draw(ctx context.Context, tableID string, count int) ([]items.Stack, error) {
	if count < 1 {
		return nil, nil
	}

	table, err := d.tables.Table(ctx, tableID)
	if err != nil {
		return nil, err
	}
	total := table.TotalWeight()
	if total <= 0 {
		return nil, nil
	}

	log := logger.FromContext(ctx)
	resolved := make(map[int]*items.Item)
	missing := make(map[int]bool)
	var stacks []items.Stack

	for i := 0; i < count; i++ {
		idx := pick(table.Entries, d.roller.Source().Intn(total))
		entry := table.Entries[idx]
		if missing[idx] {
			continue
		}

		item, ok := resolved[idx]
		if !ok {
			item, err = d.resolve(ctx, entry)
			if err != nil {
				if !errors.Is(err, items.ErrItemNotFound) {
					return stacks, fmt.Errorf("table %s: %w", tableID, err)
				}
				log.Warn("Table entry item not found", "table", tableID, "item", entry.Item)
				metrics.LookupMisses.WithLabelValues(metrics.KindItem).Inc()
				missing[idx] = true
				continue
			}
			resolved[idx] = item
		}

		quantity := 1
		if entry.Quantity != "" {
			if quantity, err = d.roller.Roll(entry.Quantity); err != nil {
				return stacks, fmt.Errorf("table %s entry %s: %w", tableID, entry.Item, err)
			}
			if quantity < 1 {
				continue
			}
		}
		items.AddStack(&stacks, items.Stack{Item: item, Quantity: quantity})
	}

	log.Debug("Rolled table", "table", tableID, "rolls", count, "items", items.FormatStacks(stacks))
	return stacks, nil
}

func (d *WeightedDrawer) resolve(ctx context.Context, entry Entry) (*items.Item, error) {
	itemType, err := items.ParseItemType(entry.Type)
	if err != nil {
		return nil, err
	}
	return d.lookup.FindItem(ctx, entry.Item, itemType)
}

// pick returns the index of the entry covering roll in [0, total weight).
func pick(entries []Entry, roll int) int {
	for i, e := range entries {
		if roll < e.Weight {
			return i
		}
		roll -= e.Weight
	}
	return len(entries) - 1
}
