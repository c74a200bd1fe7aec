package items

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/lootforge/internal/currency"
)

// ItemDefinition represents an item definition from the YAML file
type ItemDefinition struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Weight      float64        `yaml:"weight,omitempty"`
	Type        string         `yaml:"type"`
	Price       currency.Price `yaml:"price"`
	Rarity      string         `yaml:"rarity,omitempty"`
	Magic       bool           `yaml:"magic,omitempty"`
	// Weapon fields (optional)
	Damage []DamagePart `yaml:"damage,omitempty"`
	// Versatile is the two-handed damage formula, if any
	Versatile string `yaml:"versatile,omitempty"`
	// Armor fields (optional)
	Armor   *Armor `yaml:"armor,omitempty"`
	Stealth bool   `yaml:"stealth,omitempty"`
}

// ItemsConfig represents the structure of the items.yaml file
type ItemsConfig struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

// LoadItemsFromYAML loads item definitions from a YAML file
func LoadItemsFromYAML(filename string) (*ItemsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	var config ItemsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse items YAML: %w", err)
	}

	return &config, nil
}

// CreateItemFromDefinition creates an Item from an ItemDefinition
// The id parameter is the YAML key for this item (e.g., "longsword")
func CreateItemFromDefinition(id string, def ItemDefinition) (*Item, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("item %q has no name", id)
	}
	itemType, err := ParseItemType(def.Type)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", id, err)
	}
	if itemType == AnyType {
		itemType = Loot
	}

	item := NewItem(def.Name, itemType, def.Price)
	item.ID = id
	item.Description = def.Description
	item.Weight = def.Weight
	item.Rarity = def.Rarity
	item.Magic = def.Magic
	item.Damage = Damage{Parts: def.Damage, Versatile: def.Versatile}
	item.Stealth = def.Stealth
	if def.Armor != nil {
		armor := *def.Armor
		item.Armor = &armor
	}

	return item.Clone(), nil
}

// Catalog is an in-memory item catalog. It is read-only after loading and
// safe for concurrent lookups.
type Catalog struct {
	byID   map[string]*Item
	byName map[string][]*Item
}

// NewCatalog builds a catalog from items.
func NewCatalog(items ...*Item) *Catalog {
	c := &Catalog{
		byID:   make(map[string]*Item, len(items)),
		byName: make(map[string][]*Item, len(items)),
	}
	for _, item := range items {
		c.add(item)
	}
	return c
}

func (c *Catalog) add(item *Item) {
	id := item.ID
	if id == "" {
		id = strings.ToLower(strings.ReplaceAll(item.Name, " ", "_"))
		item.ID = id
	}
	c.byID[id] = item
	key := strings.ToLower(item.Name)
	c.byName[key] = append(c.byName[key], item)
}

// LoadCatalog loads and builds a catalog from an items YAML file.
func LoadCatalog(filename string) (*Catalog, error) {
	config, err := LoadItemsFromYAML(filename)
	if err != nil {
		return nil, err
	}
	return config.Catalog()
}

// Catalog converts every definition into an item.
func (config *ItemsConfig) Catalog() (*Catalog, error) {
	ids := make([]string, 0, len(config.Items))
	for id := range config.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]*Item, 0, len(ids))
	for _, id := range ids {
		item, err := CreateItemFromDefinition(id, config.Items[id])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return NewCatalog(items...), nil
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// GetItemByID returns a copy of the item with the given ID
func (c *Catalog) GetItemByID(id string) (*Item, bool) {
	item, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return item.Clone(), true
}

// Items returns copies of every item, sorted by ID.
func (c *Catalog) Items() []*Item {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// FindItem implements Lookup. An exact name match is preferred over a
// case-insensitive one.
func (c *Catalog) FindItem(ctx context.Context, name string, itemType ItemType) (*Item, error) {
	var fallback *Item
	for _, item := range c.byName[strings.ToLower(name)] {
		if !item.Type.Matches(itemType) {
			continue
		}
		if item.Name == name {
			return item.Clone(), nil
		}
		if fallback == nil {
			fallback = item
		}
	}
	if fallback != nil {
		return fallback.Clone(), nil
	}
	return nil, notFound(name, itemType)
}
