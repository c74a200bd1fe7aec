package loot

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/logger"
)

// KindNPC marks creatures controlled by the game master. Only they get loot.
const KindNPC = "npc"

// TreasureType is the custom creature type that marks a treasure pile. The
// subtype holds the treasure level.
const TreasureType = "treasure"

// Creature is anything loot can be generated for.
type Creature struct {
	Name string
	Kind string
	CR   float64

	// Type, Custom and Subtype describe the creature for loot eligibility,
	// e.g. "humanoid", "", "goblinoid".
	Type    string
	Custom  string
	Subtype string

	Coins currency.Bundle
	Items []items.Stack
}

// PowerRating reports the challenge rating of NPCs.
func (c *Creature) PowerRating() (float64, bool) {
	if c == nil || !c.IsNPC() {
		return 0, false
	}
	return c.CR, true
}

// IsNPC reports whether the creature is an NPC.
func (c *Creature) IsNPC() bool {
	return strings.EqualFold(c.Kind, KindNPC)
}

// Types returns the non-empty type descriptors, lowercased.
func (c *Creature) Types() []string {
	var types []string
	for _, t := range []string{c.Type, c.Custom, c.Subtype} {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, strings.ToLower(t))
		}
	}
	return types
}

// TreasureLevel returns the treasure level of a pile, defaultLevel when the
// subtype is not a positive number, and 0 for anything that is not a pile.
func (c *Creature) TreasureLevel(defaultLevel int) int {
	if !strings.EqualFold(strings.TrimSpace(c.Custom), TreasureType) {
		return 0
	}
	if level, err := strconv.Atoi(strings.TrimSpace(c.Subtype)); err == nil && level > 0 {
		return level
	}
	return defaultLevel
}

// AddLoot gives the creature the coins and items of b, merging items it
// already has.
func (c *Creature) AddLoot(b *Bundle) {
	if b == nil {
		return
	}
	if c.Coins == nil {
		c.Coins = currency.NewBundle()
	}
	c.Coins.Merge(b.Coins)
	c.Items = items.MergeStacks(c.Items, b.Items)
}

func (c *Creature) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}

// StackDefinition is an item a creature carries, as written in YAML.
type StackDefinition struct {
	Item     string `yaml:"item"`
	Type     string `yaml:"type,omitempty"`
	Quantity int    `yaml:"quantity,omitempty"`
}

// CreatureDefinition is a creature as written in the creatures YAML file.
type CreatureDefinition struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind,omitempty"`
	CR      float64           `yaml:"cr"`
	Type    string            `yaml:"type,omitempty"`
	Custom  string            `yaml:"custom,omitempty"`
	Subtype string            `yaml:"subtype,omitempty"`
	Coins   map[string]int    `yaml:"coins,omitempty"`
	Items   []StackDefinition `yaml:"items,omitempty"`
}

// CreaturesConfig is the structure of a creatures YAML file.
type CreaturesConfig struct {
	Creatures map[string]CreatureDefinition `yaml:"creatures"`
}

// LoadCreaturesFromYAML reads creature definitions from a YAML file.
func LoadCreaturesFromYAML(filename string) (*CreaturesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read creatures file: %w", err)
	}

	var config CreaturesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse creatures YAML: %w", err)
	}
	return &config, nil
}

// IDs returns the creature IDs, sorted.
func (config *CreaturesConfig) IDs() []string {
	ids := make([]string, 0, len(config.Creatures))
	for id := range config.Creatures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CreateCreatureFromDefinition builds a Creature, resolving its items with
// lookup. Kind defaults to npc. Items that cannot be found are skipped with
// a warning.
func CreateCreatureFromDefinition(ctx context.Context, id string, def CreatureDefinition, lookup items.Lookup) (*Creature, error) {
	if def.Name == "" {
		def.Name = id
	}
	if def.Kind == "" {
		def.Kind = KindNPC
	}

	c := &Creature{
		Name:    def.Name,
		Kind:    def.Kind,
		CR:      def.CR,
		Type:    def.Type,
		Custom:  def.Custom,
		Subtype: def.Subtype,
		Coins:   currency.NewBundle(),
	}

	for symbol, amount := range def.Coins {
		d, err := currency.ParseDenomination(symbol)
		if err != nil {
			return nil, fmt.Errorf("creature %q: %w", id, err)
		}
		c.Coins.Add(d, amount)
	}

	for _, s := range def.Items {
		itemType, err := items.ParseItemType(s.Type)
		if err != nil {
			return nil, fmt.Errorf("creature %q item %q: %w", id, s.Item, err)
		}
		if lookup == nil {
			return nil, fmt.Errorf("creature %q carries items but no item lookup is configured", id)
		}
		item, err := lookup.FindItem(ctx, s.Item, itemType)
		if err != nil {
			logger.FromContext(ctx).Warn("Creature item not found", "creature", def.Name, "item", s.Item, "error", err)
			continue
		}
		quantity := s.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items.AddStack(&c.Items, items.Stack{Item: item, Quantity: quantity})
	}

	return c, nil
}
