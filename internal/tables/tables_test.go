package tables

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/dice/dicetest"
	"github.com/lawnchairsociety/lootforge/internal/items"
)

const testTablesYAML = `tables:
  Gemstones_10gp:
    description: Ornamental stones
    entries:
      - item: Azurite
        type: loot
      - item: Hematite
        weight: 3
  trinkets:
    entries:
      - item: Arrow
        quantity: 1d4
      - item: Missing Thing
`

func writeTables(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testCatalog() *items.Catalog {
	gp := func(v float64) currency.Price { return currency.NewPrice(v, currency.Gold) }
	return items.NewCatalog(
		items.NewItem("Azurite", items.Loot, gp(10)),
		items.NewItem("Hematite", items.Loot, gp(10)),
		items.NewItem("Arrow", items.Consumable, currency.NewPrice(5, currency.Copper)),
	)
}

func TestLoadSet(t *testing.T) {
	set, err := LoadSet(writeTables(t, testTablesYAML))
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"Gemstones_10gp", "trinkets"}, set.IDs())

	table, err := set.Table(context.Background(), "Gemstones_10gp")
	require.NoError(t, err)
	assert.Equal(t, "Ornamental stones", table.Description)
	assert.Equal(t, 4, table.TotalWeight())
	assert.Equal(t, 1, table.Entries[0].Weight)
}

func TestLoadSetErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "tables: [oops"},
		{"missing item", "tables:\n  t:\n    entries:\n      - weight: 2\n"},
		{"negative weight", "tables:\n  t:\n    entries:\n      - item: A\n        weight: -1\n"},
		{"bad type", "tables:\n  t:\n    entries:\n      - item: A\n        type: spaceship\n"},
		{"bad quantity", "tables:\n  t:\n    entries:\n      - item: A\n        quantity: lots\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSet(writeTables(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadSet(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSetTableNotFound(t *testing.T) {
	_, err := NewSet().Table(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestPick(t *testing.T) {
	entries := []Entry{{Item: "a", Weight: 1}, {Item: "b", Weight: 3}, {Item: "c", Weight: 2}}
	want := []int{0, 1, 1, 1, 2, 2}
	for roll, idx := range want {
		assert.Equal(t, idx, pick(entries, roll), "roll %d", roll)
	}
}

func TestDrawMergesRepeats(t *testing.T) {
	set, err := LoadSet(writeTables(t, testTablesYAML))
	require.NoError(t, err)

	// rolls over total weight 4: 0 Azurite, then Hematite three times
	d := NewWeightedDrawer(set, testCatalog(), dicetest.Ints(0, 1, 2, 3))
	stacks, err := d.Draw(context.Background(), "Gemstones_10gp", 4)
	require.NoError(t, err)

	assert.Equal(t, "Azurite, Hematite(x3)", items.FormatStacks(stacks))
}

func TestDrawSkipsMissingItems(t *testing.T) {
	set, err := LoadSet(writeTables(t, testTablesYAML))
	require.NoError(t, err)

	// entry rolls alternate Arrow and Missing Thing; quantity 1d4 rolls 3
	src := dicetest.Ints(0, 2, 1, 1)
	d := NewWeightedDrawer(set, testCatalog(), src)
	stacks, err := d.Draw(context.Background(), "trinkets", 2)
	require.NoError(t, err)

	require.Len(t, stacks, 1)
	assert.Equal(t, "Arrow", stacks[0].Item.Name)
	assert.Equal(t, 3, stacks[0].Quantity)
}

func TestDrawEdgeCases(t *testing.T) {
	d := NewWeightedDrawer(NewSet(), testCatalog(), dice.NewSeededSource(1))

	stacks, err := d.Draw(context.Background(), "anything", 0)
	assert.NoError(t, err)
	assert.Nil(t, stacks)

	_, err = d.Draw(context.Background(), "unknown", 3)
	assert.True(t, errors.Is(err, ErrTableNotFound))
}

func TestDrawCountsEveryRoll(t *testing.T) {
	table, err := CreateTableFromDefinition("gems", TableDefinition{Entries: []Entry{
		{Item: "Azurite"}, {Item: "Hematite", Weight: 2},
	}})
	require.NoError(t, err)

	d := NewWeightedDrawer(NewSet(table), testCatalog(), dice.NewSeededSource(5))
	stacks, err := d.Draw(context.Background(), "gems", 100)
	require.NoError(t, err)

	assert.Equal(t, 100, items.TotalQuantity(stacks))
	assert.LessOrEqual(t, len(stacks), 2)
}
