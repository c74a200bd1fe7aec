package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lawnchairsociety/lootforge/internal/tables"
)

// SaveTable stores a table, replacing any previous entries.
func (d *Database) SaveTable(ctx context.Context, table *tables.Table) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		return d.saveTable(ctx, tx, table)
	})
}

// ImportTables stores every table of the set in one transaction and returns
// how many were written.
func (d *Database) ImportTables(ctx context.Context, set *tables.Set) (int, error) {
	ids := set.IDs()
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			table, err := set.Table(ctx, id)
			if err != nil {
				return err
			}
			if err := d.saveTable(ctx, tx, table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (d *Database) saveTable(ctx context.Context, tx *sql.Tx, table *tables.Table) error {
	upsert := d.qb.Build(`INSERT INTO loot_tables (id, description) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET description = excluded.description`)
	if _, err := tx.ExecContext(ctx, upsert, table.ID, table.Description); err != nil {
		return fmt.Errorf("failed to save table %s: %w", table.ID, err)
	}

	if _, err := tx.ExecContext(ctx, d.qb.Build(`DELETE FROM table_entries WHERE table_id = ?`), table.ID); err != nil {
		return fmt.Errorf("failed to clear entries of table %s: %w", table.ID, err)
	}

	insert := d.qb.Build(`INSERT INTO table_entries (table_id, position, item, item_type, weight, quantity)
		VALUES (?, ?, ?, ?, ?, ?)`)
	for i, e := range table.Entries {
		weight := e.Weight
		if weight <= 0 {
			weight = 1
		}
		if _, err := tx.ExecContext(ctx, insert, table.ID, i, e.Item, e.Type, weight, e.Quantity); err != nil {
			return fmt.Errorf("failed to save entry %d of table %s: %w", i, table.ID, err)
		}
	}
	return nil
}

// Table implements tables.Source.
func (d *Database) Table(ctx context.Context, id string) (*tables.Table, error) {
	table := &tables.Table{ID: id}
	err := d.db.QueryRowContext(ctx, d.qb.Build(`SELECT description FROM loot_tables WHERE id = ?`), id).
		Scan(&table.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", tables.ErrTableNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", id, err)
	}

	rows, err := d.db.QueryContext(ctx, d.qb.Build(`SELECT item, item_type, weight, quantity
		FROM table_entries WHERE table_id = ? ORDER BY position`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries of table %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e tables.Entry
		if err := rows.Scan(&e.Item, &e.Type, &e.Weight, &e.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan entry of table %s: %w", id, err)
		}
		table.Entries = append(table.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// TableIDs returns the stored table ids, sorted.
func (d *Database) TableIDs(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id FROM loot_tables ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TableSet loads every stored table.
func (d *Database) TableSet(ctx context.Context) (*tables.Set, error) {
	ids, err := d.TableIDs(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]*tables.Table, 0, len(ids))
	for _, id := range ids {
		table, err := d.Table(ctx, id)
		if err != nil {
			return nil, err
		}
		all = append(all, table)
	}
	return tables.NewSet(all...), nil
}

// DeleteTable removes a table and its entries.
func (d *Database) DeleteTable(ctx context.Context, id string) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, d.qb.Build(`DELETE FROM table_entries WHERE table_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete entries of table %s: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, d.qb.Build(`DELETE FROM loot_tables WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete table %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", tables.ErrTableNotFound, id)
		}
		return nil
	})
}
