// Package tables defines treasure and trinket tables and draws items from
// them.
package tables

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
)

// ErrTableNotFound is returned when a table ID is unknown.
var ErrTableNotFound = errors.New("table not found")

// Entry is one result of a table. Item names a catalog item, Type optionally
// restricts the lookup. Quantity is a dice formula for how many units the
// result yields; empty means one.
type Entry struct {
	Item     string `yaml:"item"`
	Type     string `yaml:"type,omitempty"`
	Weight   int    `yaml:"weight,omitempty"`
	Quantity string `yaml:"quantity,omitempty"`
}

// Table is a weighted list of entries.
type Table struct {
	ID          string
	Description string
	Entries     []Entry
}

// TotalWeight sums the weight of every entry.
func (t *Table) TotalWeight() int {
	total := 0
	for _, e := range t.Entries {
		total += e.Weight
	}
	return total
}

// TableDefinition is a table as written in the tables YAML file.
type TableDefinition struct {
	Description string  `yaml:"description,omitempty"`
	Entries     []Entry `yaml:"entries"`
}

// TablesConfig is the structure of the tables.yaml file.
type TablesConfig struct {
	Tables map[string]TableDefinition `yaml:"tables"`
}

// LoadTablesFromYAML reads table definitions from a YAML file.
func LoadTablesFromYAML(filename string) (*TablesConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	var config TablesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tables YAML: %w", err)
	}
	return &config, nil
}

// CreateTableFromDefinition validates a definition and builds its Table.
// Entries without a weight count as weight 1.
func CreateTableFromDefinition(id string, def TableDefinition) (*Table, error) {
	if id == "" {
		return nil, errors.New("table has no id")
	}

	table := &Table{ID: id, Description: def.Description}
	for i, e := range def.Entries {
		if strings.TrimSpace(e.Item) == "" {
			return nil, fmt.Errorf("table %q entry %d has no item", id, i)
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("table %q entry %q has negative weight", id, e.Item)
		}
		if e.Weight == 0 {
			e.Weight = 1
		}
		if _, err := items.ParseItemType(e.Type); err != nil {
			return nil, fmt.Errorf("table %q entry %q: %w", id, e.Item, err)
		}
		if e.Quantity != "" {
			if _, err := dice.Parse(e.Quantity); err != nil {
				return nil, fmt.Errorf("table %q entry %q: %w", id, e.Item, err)
			}
		}
		table.Entries = append(table.Entries, e)
	}
	return table, nil
}

// Source resolves tables by ID.
type Source interface {
	Table(ctx context.Context, id string) (*Table, error)
}

// Set is an in-memory Source.
type Set struct {
	tables map[string]*Table
}

// NewSet creates a Set from tables.
func NewSet(tables ...*Table) *Set {
	s := &Set{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		s.tables[t.ID] = t
	}
	return s
}

// Set builds every table of the config.
func (config *TablesConfig) Set() (*Set, error) {
	tables := make([]*Table, 0, len(config.Tables))
	for id, def := range config.Tables {
		t, err := CreateTableFromDefinition(id, def)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewSet(tables...), nil
}

// LoadSet reads a tables YAML file into a Set.
func LoadSet(filename string) (*Set, error) {
	config, err := LoadTablesFromYAML(filename)
	if err != nil {
		return nil, err
	}
	return config.Set()
}

// Table implements Source.
func (s *Set) Table(ctx context.Context, id string) (*Table, error) {
	t, ok := s.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	return t, nil
}

// IDs returns the table IDs, sorted.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.tables))
	for id := range s.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of tables.
func (s *Set) Len() int {
	return len(s.tables)
}
