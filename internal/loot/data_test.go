package loot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/lootforge/internal/config"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/tables"
)

// findDataDir looks for the data directory
func findDataDir() string {
	candidates := []string{
		"../../data",
		"../../../data",
		"data",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(filepath.Join(candidate, "loot.yaml")); err == nil {
			return candidate
		}
	}

	return ""
}

type shippedData struct {
	cfg     *config.LootConfig
	catalog *items.Catalog
	tables  *tables.Set
}

func loadShippedData(t *testing.T) shippedData {
	t.Helper()
	dir := findDataDir()
	if dir == "" {
		t.Skip("data directory not found")
	}

	cfg, err := config.LoadConfig(filepath.Join(dir, "loot.yaml"))
	require.NoError(t, err)
	catalog, err := items.LoadCatalog(filepath.Join(dir, "items.yaml"))
	require.NoError(t, err)
	set, err := tables.LoadSet(filepath.Join(dir, "tables.yaml"))
	require.NoError(t, err)

	return shippedData{cfg: cfg, catalog: catalog, tables: set}
}

func TestShippedTablesResolve(t *testing.T) {
	data := loadShippedData(t)
	ctx := context.Background()

	for _, id := range data.tables.IDs() {
		table, err := data.tables.Table(ctx, id)
		require.NoError(t, err)
		assert.NotEmpty(t, table.Entries, "table %s", id)

		for _, e := range table.Entries {
			itemType, err := items.ParseItemType(e.Type)
			require.NoError(t, err)
			_, err = data.catalog.FindItem(ctx, e.Item, itemType)
			assert.NoError(t, err, "table %s entry %q", id, e.Item)
		}
	}
}

func TestShippedConfigTablesExist(t *testing.T) {
	data := loadShippedData(t)
	ctx := context.Background()

	for _, tier := range data.cfg.Treasure.Tiers {
		_, err := data.tables.Table(ctx, tier.Table)
		assert.NoError(t, err, "tier %s", tier.Table)
	}
	_, err := data.tables.Table(ctx, data.cfg.Trinkets.Table)
	assert.NoError(t, err)
}

func TestShippedCatalogHasAmmo(t *testing.T) {
	data := loadShippedData(t)
	ctx := context.Background()

	for _, rule := range AmmoRules {
		if rule.Ammo == "" {
			continue
		}
		_, err := data.catalog.FindItem(ctx, rule.Ammo, items.AnyType)
		assert.NoError(t, err, "ammo %s", rule.Ammo)
	}
}

func TestShippedCreatures(t *testing.T) {
	data := loadShippedData(t)
	ctx := context.Background()

	defs, err := LoadCreaturesFromYAML(filepath.Join(findDataDir(), "creatures.yaml"))
	require.NoError(t, err)

	src := dice.NewSeededSource(42)
	gen, err := NewGenerator(data.cfg, tables.NewWeightedDrawer(data.tables, data.catalog, src), data.catalog, src)
	require.NoError(t, err)

	for _, id := range defs.IDs() {
		def := defs.Creatures[id]
		c, err := CreateCreatureFromDefinition(ctx, id, def, data.catalog)
		require.NoError(t, err, id)
		assert.Len(t, c.Items, len(def.Items), "%s: every carried item should resolve", id)

		b, err := gen.GenerateLoot(ctx, c)
		require.NoError(t, err, id)
		if !c.IsNPC() {
			assert.True(t, b.IsEmpty(), id)
			continue
		}
		c.AddLoot(b)

		_, err = gen.Deteriorate(ctx, c)
		require.NoError(t, err, id)
	}
}
