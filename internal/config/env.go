package config

import (
	"fmt"
	"os"
	"strconv"
)

// applyEnv overrides settings from LOOT_* environment variables.
func applyEnv(c *LootConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"LOOT_COINS_PERCENTAGE", &c.Coins.Percentage},
		{"LOOT_COINS_MAX_FACTOR", &c.Coins.MaxFactor},
		{"LOOT_TREASURE_CONVERSION_PERCENTAGE", &c.Treasure.ConversionPercentage},
		{"LOOT_TRINKETS_PERCENTAGE", &c.Trinkets.Percentage},
		{"LOOT_TRINKETS_MAX", &c.Trinkets.Max},
		{"LOOT_BREAK_CHANCE", &c.Deterioration.BreakChance},
		{"LOOT_DAMAGE_CHANCE", &c.Deterioration.DamageChance},
		{"LOOT_PRICE_LOSS_PERCENTAGE", &c.Deterioration.PriceLossPercentage},
		{"LOOT_UTILITY_LOSS_PERCENTAGE", &c.Deterioration.UtilityLossPercentage},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s value %q: %w", e.key, v, err)
			}
			*e.dst = n
		}
	}

	if v := os.Getenv("LOOT_BREAKABLE_MAGIC_ITEMS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOOT_BREAKABLE_MAGIC_ITEMS value %q: %w", v, err)
		}
		c.Deterioration.BreakableMagicItems = b
	}

	lists := []struct {
		key string
		dst *StringList
	}{
		{"LOOT_TYPES_WITH_LOOT", &c.TypesWithLoot},
		{"LOOT_BREAKABLE_TYPES", &c.Deterioration.BreakableTypes},
		{"LOOT_DAMAGEABLE_TYPES", &c.Deterioration.DamageableTypes},
	}
	for _, e := range lists {
		if v, ok := os.LookupEnv(e.key); ok {
			*e.dst = ParseStringList(v)
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"LOOT_TRINKETS_TABLE", &c.Trinkets.Table},
		{"LOOT_DAMAGED_SUFFIX", &c.Deterioration.DamagedSuffix},
		{"LOOT_CATALOG_SOURCE", &c.Catalog.Source},
		{"LOOT_CATALOG_DRIVER", &c.Catalog.Driver},
		{"LOOT_SQLITE_PATH", &c.Catalog.SQLitePath},
		{"LOOT_POSTGRES_URL", &c.Catalog.PostgresURL},
	}
	for _, e := range strs {
		if v := os.Getenv(e.key); v != "" {
			*e.dst = v
		}
	}

	return nil
}
