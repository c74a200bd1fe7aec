// migrate-to-postgres copies the item catalog and loot tables from SQLite to
// PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/catalog.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user loot \
//	    -pg-password loot \
//	    -pg-database lootforge
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/lawnchairsociety/lootforge/internal/database"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/catalog.db", "Path to SQLite database")
	pgURL := flag.String("pg-url", "", "PostgreSQL connection URL (overrides the other -pg flags)")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "loot", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "loot", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "lootforge", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	pg := database.DefaultPostgresConfig()
	pg.URL = *pgURL
	pg.Host = *pgHost
	pg.Port = *pgPort
	pg.User = *pgUser
	pg.Password = *pgPassword
	pg.Database = *pgDatabase
	pg.SSLMode = *pgSSLMode

	log.Println("SQLite to PostgreSQL Catalog Migration")
	log.Println("======================================")

	if err := migrate(context.Background(), *sqlitePath, pg, *dryRun); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// migrate copies the catalog at sqlitePath into PostgreSQL. Both databases
// are closed before it returns.
func migrate(ctx context.Context, sqlitePath string, pg database.PostgresConfig, dryRun bool) error {
	log.Printf("Opening SQLite database: %s", sqlitePath)
	src, err := database.Open(sqlitePath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer src.Close()

	catalog, err := src.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to read items: %w", err)
	}
	set, err := src.TableSet(ctx)
	if err != nil {
		return fmt.Errorf("failed to read loot tables: %w", err)
	}
	log.Printf("Found %d items and %d loot tables", catalog.Len(), set.Len())

	if dryRun {
		for _, id := range set.IDs() {
			table, _ := set.Table(ctx, id)
			log.Printf("  %s: %d entries", id, len(table.Entries))
		}
		log.Println("DRY RUN - No changes were made")
		return nil
	}

	if pg.URL == "" {
		log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", pg.User, pg.Host, pg.Port, pg.Database)
	} else {
		log.Println("Opening PostgreSQL database from -pg-url")
	}
	dst, err := database.OpenWithConfig(database.Config{Driver: string(database.DialectPostgres), Postgres: pg})
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}
	defer dst.Close()

	nItems, err := dst.ImportCatalog(ctx, catalog)
	if err != nil {
		return fmt.Errorf("failed to migrate items: %w", err)
	}
	log.Printf("  Migrated %d items", nItems)

	nTables, err := dst.ImportTables(ctx, set)
	if err != nil {
		return fmt.Errorf("failed to migrate loot tables: %w", err)
	}
	log.Printf("  Migrated %d loot tables", nTables)

	log.Println("======================================")
	log.Println("Migration complete!")
	return nil
}
