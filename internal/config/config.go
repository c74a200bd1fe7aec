package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LootConfig holds every setting the loot engine reads.
type LootConfig struct {
	// TypesWithLoot lists the creature types that carry loot. "all" matches
	// every type.
	TypesWithLoot StringList `yaml:"types_with_loot" validate:"dive,required"`

	Coins         CoinsConfig         `yaml:"coins"`
	Treasure      TreasureConfig      `yaml:"treasure"`
	Trinkets      TrinketsConfig      `yaml:"trinkets"`
	Deterioration DeteriorationConfig `yaml:"deterioration"`
	Catalog       CatalogConfig       `yaml:"catalog"`
}

// CoinsConfig holds coin generation settings.
type CoinsConfig struct {
	// Percentage is the chance of a roll producing coins at all.
	Percentage int `yaml:"percentage" validate:"min=0,max=100"`

	// MaxFactor caps how many stacked rolls a single coin roll can represent.
	MaxFactor int `yaml:"max_factor" validate:"min=1,max=5"`
}

// TreasureConfig holds coin-to-treasure conversion settings.
type TreasureConfig struct {
	// ConversionPercentage is the chance each candidate draw converts coins
	// into a treasure table draw. 0 disables conversion.
	ConversionPercentage int `yaml:"conversion_percentage" validate:"min=0,max=100"`

	// DefaultLevel is the treasure level used for piles without an explicit one.
	DefaultLevel int `yaml:"default_level" validate:"min=1"`

	// Tiers are the treasure tables coins can be converted into. Order does
	// not matter; they are sorted by value when loaded.
	Tiers []TierConfig `yaml:"tiers" validate:"min=1,dive"`
}

// TierConfig is one treasure table and the value of a single draw from it.
type TierConfig struct {
	Table   string `yaml:"table" validate:"required"`
	ValueGP int    `yaml:"value_gp" validate:"gt=0"`
}

// TrinketsConfig holds trinket generation settings.
type TrinketsConfig struct {
	Percentage int    `yaml:"percentage" validate:"min=0,max=100"`
	Max        int    `yaml:"max" validate:"min=1,max=5"`
	Table      string `yaml:"table" validate:"required"`
}

// DeteriorationConfig holds item breakage and decay settings.
type DeteriorationConfig struct {
	BreakChance     int        `yaml:"break_chance" validate:"min=0,max=100"`
	DamageChance    int        `yaml:"damage_chance" validate:"min=0,max=100"`
	BreakableTypes  StringList `yaml:"breakable_types"`
	DamageableTypes StringList `yaml:"damageable_types"`
	// Damaged items keep at least 1% of their price and utility.
	PriceLossPercentage   int    `yaml:"price_loss_percentage" validate:"min=0,max=99"`
	UtilityLossPercentage int    `yaml:"utility_loss_percentage" validate:"min=0,max=99"`
	BreakableMagicItems   bool   `yaml:"breakable_magic_items"`
	DamagedSuffix         string `yaml:"damaged_suffix" validate:"required"`
}

// CatalogConfig selects where items and tables are read from.
type CatalogConfig struct {
	// Source is "yaml" (ItemsFile/TablesFile) or "database".
	Source     string `yaml:"source" validate:"oneof=yaml database"`
	ItemsFile  string `yaml:"items_file" validate:"required_if=Source yaml"`
	TablesFile string `yaml:"tables_file" validate:"required_if=Source yaml"`

	// Driver is "sqlite" or "postgres" when Source is "database".
	Driver      string `yaml:"driver" validate:"omitempty,oneof=sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresURL string `yaml:"postgres_url"`

	// CacheSize bounds the item lookup cache. 0 disables caching.
	CacheSize int `yaml:"cache_size" validate:"min=0"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *LootConfig {
	return &LootConfig{
		TypesWithLoot: StringList{"humanoid"},
		Coins: CoinsConfig{
			Percentage: 80,
			MaxFactor:  3,
		},
		Treasure: TreasureConfig{
			ConversionPercentage: 33,
			DefaultLevel:         5,
			Tiers:                DefaultTiers(),
		},
		Trinkets: TrinketsConfig{
			Percentage: 60,
			Max:        3,
			Table:      "trinkets",
		},
		Deterioration: DeteriorationConfig{
			BreakChance:           80,
			DamageChance:          95,
			BreakableTypes:        StringList{"equipment", "weapon", "consumable", "backpack", "tool"},
			DamageableTypes:       StringList{"equipment", "weapon"},
			PriceLossPercentage:   75,
			UtilityLossPercentage: 50,
			BreakableMagicItems:   false,
			DamagedSuffix:         " (damaged)",
		},
		Catalog: CatalogConfig{
			Source:     "yaml",
			ItemsFile:  "data/items.yaml",
			TablesFile: "data/tables.yaml",
			Driver:     "sqlite",
			SQLitePath: "data/catalog.db",
			CacheSize:  512,
		},
	}
}

// DefaultTiers returns the gemstone and art object tables.
func DefaultTiers() []TierConfig {
	return []TierConfig{
		{Table: "Gemstones_10gp", ValueGP: 10},
		{Table: "Gemstones_50gp", ValueGP: 50},
		{Table: "Gemstones_100gp", ValueGP: 100},
		{Table: "Gemstones_500gp", ValueGP: 500},
		{Table: "Gemstones_1000gp", ValueGP: 1000},
		{Table: "Gemstones_5000gp", ValueGP: 5000},
		{Table: "ArtObjects_25gp", ValueGP: 25},
		{Table: "ArtObjects_250gp", ValueGP: 250},
		{Table: "ArtObjects_750gp", ValueGP: 750},
		{Table: "ArtObjects_2500gp", ValueGP: 2500},
		{Table: "ArtObjects_7500gp", ValueGP: 7500},
	}
}

// LoadConfig loads loot configuration from a YAML file, applies LOOT_*
// environment overrides and validates the result.
// If the file doesn't exist, the defaults are used.
func LoadConfig(path string) (*LootConfig, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), fmt.Errorf("parsing %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return config, err
		}
	}

	if err := applyEnv(config); err != nil {
		return DefaultConfig(), err
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every range and required setting.
func (c *LootConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, describe(e))
			}
			return fmt.Errorf("invalid loot config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func describe(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "LootConfig.")
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
	}
}

// PriceLossFactor is the fraction of price a damaged item keeps.
func (d DeteriorationConfig) PriceLossFactor() float64 {
	return float64(100-d.PriceLossPercentage) / 100
}

// UtilityLossFactor is the fraction of damage and armor a damaged item keeps.
func (d DeteriorationConfig) UtilityLossFactor() float64 {
	return float64(100-d.UtilityLossPercentage) / 100
}

// HasLoot reports whether any of the creature's types is configured to
// carry loot.
func (c *LootConfig) HasLoot(types ...string) bool {
	if c.TypesWithLoot.Contains("all") {
		return true
	}
	for _, t := range types {
		if t != "" && c.TypesWithLoot.Contains(t) {
			return true
		}
	}
	return false
}
