package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/items"
)

const itemColumns = `id, name, type, description, weight, price_amount, price_denomination,
	rarity, magic, damage, versatile, armor_type, armor_value, armor_dex, stealth`

// SaveItem inserts or replaces an item record.
func (d *Database) SaveItem(ctx context.Context, item *items.Item) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		return d.saveItem(ctx, tx, item)
	})
}

// ImportCatalog saves every item of the catalog in one transaction and
// returns how many were written.
func (d *Database) ImportCatalog(ctx context.Context, catalog *items.Catalog) (int, error) {
	all := catalog.Items()
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		for _, item := range all {
			if err := d.saveItem(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (d *Database) saveItem(ctx context.Context, tx *sql.Tx, item *items.Item) error {
	if item.ID == "" {
		return fmt.Errorf("item %q has no id", item.Name)
	}

	damage := ""
	if len(item.Damage.Parts) > 0 {
		data, err := yaml.Marshal(item.Damage.Parts)
		if err != nil {
			return fmt.Errorf("failed to encode damage of %s: %w", item.ID, err)
		}
		damage = string(data)
	}

	var (
		armorType  string
		armorValue int
		armorDex   sql.NullInt64
	)
	if item.Armor != nil {
		armorType = string(item.Armor.Type)
		armorValue = item.Armor.Value
		if item.Armor.Dex != nil {
			armorDex = sql.NullInt64{Int64: int64(*item.Armor.Dex), Valid: true}
		}
	}

	query := d.qb.Build(`INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			description = excluded.description,
			weight = excluded.weight,
			price_amount = excluded.price_amount,
			price_denomination = excluded.price_denomination,
			rarity = excluded.rarity,
			magic = excluded.magic,
			damage = excluded.damage,
			versatile = excluded.versatile,
			armor_type = excluded.armor_type,
			armor_value = excluded.armor_value,
			armor_dex = excluded.armor_dex,
			stealth = excluded.stealth`)

	_, err := tx.ExecContext(ctx, query,
		item.ID, item.Name, item.Type.String(), item.Description, item.Weight,
		item.Price.Amount.String(), item.Price.Denomination.String(),
		item.Rarity, boolToInt(item.Magic), damage, item.Damage.Versatile,
		armorType, armorValue, armorDex, boolToInt(item.Stealth))
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", item.ID, err)
	}
	return nil
}

// GetItem returns the item with the given id.
func (d *Database) GetItem(ctx context.Context, id string) (*items.Item, error) {
	query := d.qb.Build(`SELECT ` + itemColumns + ` FROM items WHERE id = ?`)
	item, err := scanItem(d.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %s", items.ErrItemNotFound, id)
	}
	return item, err
}

// FindItem implements items.Lookup. An exact name match is preferred over
// a case-insensitive one.
func (d *Database) FindItem(ctx context.Context, name string, itemType items.ItemType) (*items.Item, error) {
	for _, cond := range []string{"name = ?", d.dialect.EqualFold("name")} {
		query := `SELECT ` + itemColumns + ` FROM items WHERE ` + cond
		args := []any{name}
		if itemType != items.AnyType {
			query += ` AND type = ?`
			args = append(args, itemType.String())
		}
		query += ` ORDER BY id LIMIT 1`

		item, err := scanItem(d.db.QueryRowContext(ctx, d.qb.Build(query), args...))
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}
	return nil, items.NotFound(name, itemType)
}

// ListItems returns every stored item, ordered by id.
func (d *Database) ListItems(ctx context.Context) ([]*items.Item, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var all []*items.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, item)
	}
	return all, rows.Err()
}

// Catalog loads every stored item into an in-memory catalog.
func (d *Database) Catalog(ctx context.Context) (*items.Catalog, error) {
	all, err := d.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return items.NewCatalog(all...), nil
}

// CountItems returns the number of stored items.
func (d *Database) CountItems(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// DeleteItem removes an item by id.
func (d *Database) DeleteItem(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, d.qb.Build(`DELETE FROM items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: id %s", items.ErrItemNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*items.Item, error) {
	var (
		item                     items.Item
		itemType, denomination   string
		amount, damage, armorTyp string
		armorValue               int
		armorDex                 sql.NullInt64
		magic, stealth           int
	)

	err := row.Scan(&item.ID, &item.Name, &itemType, &item.Description, &item.Weight,
		&amount, &denomination, &item.Rarity, &magic, &damage, &item.Damage.Versatile,
		&armorTyp, &armorValue, &armorDex, &stealth)
	if err != nil {
		return nil, err
	}

	if item.Type, err = items.ParseItemType(itemType); err != nil {
		return nil, fmt.Errorf("item %s: %w", item.ID, err)
	}
	if item.Price.Denomination, err = currency.ParseDenomination(denomination); err != nil {
		return nil, fmt.Errorf("item %s: %w", item.ID, err)
	}
	if item.Price.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("item %s price: %w", item.ID, err)
	}
	if damage != "" {
		if err := yaml.Unmarshal([]byte(damage), &item.Damage.Parts); err != nil {
			return nil, fmt.Errorf("item %s damage: %w", item.ID, err)
		}
	}
	if armorTyp != "" {
		item.Armor = &items.Armor{Type: items.ArmorType(armorTyp), Value: armorValue}
		if armorDex.Valid {
			item.Armor.Dex = items.IntPtr(int(armorDex.Int64))
		}
	}
	item.Magic = magic != 0
	item.Stealth = stealth != 0

	return &item, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
