// lootgen generates loot for creatures and deteriorates the items they carry.
//
// Usage:
//
//	go run ./cmd/lootgen -cr 3 -type humanoid
//	go run ./cmd/lootgen -creatures data/creatures.yaml -creature bandit_captain -deteriorate -fix
//	go run ./cmd/lootgen -import
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lawnchairsociety/lootforge/internal/config"
	"github.com/lawnchairsociety/lootforge/internal/database"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/logger"
	"github.com/lawnchairsociety/lootforge/internal/loot"
	"github.com/lawnchairsociety/lootforge/internal/tables"
)

// options holds the generation flags.
type options struct {
	cr            float64
	creatureType  string
	pileLevel     int
	creaturesFile string
	creatureID    string
	deteriorate   bool
	fix           bool
	count         int
	seed          int64
}

func main() {
	configFile := flag.String("config", "data/loot.yaml", "Path to loot config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	envFile := flag.String("env", ".env", "Path to .env file with LOOT_* overrides")
	var opts options
	flag.Float64Var(&opts.cr, "cr", 1, "Challenge rating of the creature")
	flag.StringVar(&opts.creatureType, "type", "humanoid", "Creature type")
	flag.IntVar(&opts.pileLevel, "pile", 0, "Generate a treasure pile of this level instead of a creature")
	flag.StringVar(&opts.creaturesFile, "creatures", "", "Path to creatures YAML file")
	flag.StringVar(&opts.creatureID, "creature", "", "Creature id in the creatures file (default: all)")
	flag.BoolVar(&opts.deteriorate, "deteriorate", false, "Deteriorate the items the creature carries after generating loot")
	flag.BoolVar(&opts.fix, "fix", false, "Repair damaged items the creature carries after generating loot")
	flag.IntVar(&opts.count, "n", 1, "Number of times to generate loot")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (default: random)")
	importCatalog := flag.Bool("import", false, "Import the YAML items and tables into the catalog database and exit")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address and wait for a signal")
	flag.Parse()

	// .env first so LOG_* overrides reach the logger
	envErr := config.LoadDotEnv(*envFile)

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	if envErr != nil {
		logger.Warning("Failed to load .env file", "path", *envFile, "error", envErr)
	}
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load loot config: %v", err)
	}

	ctx := context.Background()

	if *importCatalog {
		if err := runImport(ctx, cfg.Catalog); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		return
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	if err := generate(ctx, os.Stdout, cfg, opts); err != nil {
		log.Fatalf("%v", err)
	}

	if *metricsAddr != "" {
		logger.Always("Serving metrics until interrupted", "addr", *metricsAddr)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
	}
}

// generate opens the catalog, generates loot opts.count times for every
// selected creature and prints the results to w. The catalog is closed before
// it returns.
func generate(ctx context.Context, w io.Writer, cfg *config.LootConfig, opts options) error {
	var src dice.Source
	if opts.seed != 0 {
		src = dice.NewSeededSource(opts.seed)
	} else {
		src = dice.NewSource()
	}

	lookup, source, closeCatalog, err := openCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer closeCatalog()

	gen, err := loot.NewGenerator(cfg, tables.NewWeightedDrawer(source, lookup, src), lookup, src)
	if err != nil {
		return fmt.Errorf("failed to create loot generator: %w", err)
	}

	creatures, err := loadCreatures(ctx, opts.creaturesFile, opts.creatureID, lookup)
	if err != nil {
		return fmt.Errorf("failed to load creatures: %w", err)
	}
	if len(creatures) == 0 {
		creatures = []*loot.Creature{adHocCreature(opts.cr, opts.creatureType, opts.pileLevel)}
	}

	for _, c := range creatures {
		for i := 0; i < opts.count; i++ {
			creature := *c
			creature.Coins = c.Coins.Clone()
			creature.Items = append([]items.Stack(nil), c.Items...)
			if err := printLoot(ctx, w, gen, &creature, opts); err != nil {
				return fmt.Errorf("loot generation failed for %s: %w", c.Name, err)
			}
		}
	}
	return nil
}

func printLoot(ctx context.Context, w io.Writer, gen *loot.Generator, c *loot.Creature, opts options) error {
	b, err := gen.GenerateLoot(ctx, c)
	if err != nil {
		return err
	}
	c.AddLoot(b)

	label := ""
	if b.Pile {
		label = " (treasure pile)"
	}
	fmt.Fprintf(w, "%s%s [CR %g]\n", c.Name, label, c.CR)
	fmt.Fprintf(w, "  loot:  %s\n", b.String())

	if opts.deteriorate {
		res, err := gen.Deteriorate(ctx, c)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  decay: %d broken, %d damaged, %d destroyed\n", res.Broken, res.Damaged, res.Destroyed)
	}
	if opts.fix {
		n, err := gen.Repair(ctx, c)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  fix:   %d repaired\n", n)
	}

	fmt.Fprintf(w, "  coins: %s\n", orNothing(c.Coins.String()))
	fmt.Fprintf(w, "  items: %s\n", orNothing(items.FormatStacks(c.Items)))
	return nil
}

func orNothing(s string) string {
	if s == "" {
		return "nothing"
	}
	return s
}

func adHocCreature(cr float64, creatureType string, pileLevel int) *loot.Creature {
	if pileLevel > 0 {
		return &loot.Creature{
			Name:    "Treasure pile",
			Kind:    loot.KindNPC,
			CR:      cr,
			Custom:  loot.TreasureType,
			Subtype: fmt.Sprint(pileLevel),
		}
	}
	return &loot.Creature{
		Name: fmt.Sprintf("CR %g %s", cr, creatureType),
		Kind: loot.KindNPC,
		CR:   cr,
		Type: creatureType,
	}
}

func loadCreatures(ctx context.Context, path, id string, lookup items.Lookup) ([]*loot.Creature, error) {
	if path == "" {
		return nil, nil
	}
	defs, err := loot.LoadCreaturesFromYAML(path)
	if err != nil {
		return nil, err
	}

	ids := defs.IDs()
	if id != "" {
		if _, ok := defs.Creatures[id]; !ok {
			return nil, fmt.Errorf("creature %q not found in %s", id, path)
		}
		ids = []string{id}
	}

	creatures := make([]*loot.Creature, 0, len(ids))
	for _, cid := range ids {
		c, err := loot.CreateCreatureFromDefinition(ctx, cid, defs.Creatures[cid], lookup)
		if err != nil {
			return nil, err
		}
		creatures = append(creatures, c)
	}
	return creatures, nil
}

// openCatalog returns the item lookup and table source the config selects.
func openCatalog(cfg config.CatalogConfig) (items.Lookup, tables.Source, func(), error) {
	var (
		lookup items.Lookup
		source tables.Source
		closer = func() {}
	)

	switch cfg.Source {
	case "database":
		db, err := database.OpenWithConfig(database.ConfigFromCatalog(cfg))
		if err != nil {
			return nil, nil, nil, err
		}
		lookup, source = db, db
		closer = func() { db.Close() }
		logger.Info("Catalog loaded from database", "driver", cfg.Driver)
	default:
		catalog, err := items.LoadCatalog(cfg.ItemsFile)
		if err != nil {
			return nil, nil, nil, err
		}
		set, err := tables.LoadSet(cfg.TablesFile)
		if err != nil {
			return nil, nil, nil, err
		}
		lookup, source = catalog, set
		logger.Info("Catalog loaded", "items", catalog.Len(), "tables", set.Len())
	}

	if cfg.CacheSize > 0 {
		lookup = items.NewCachedLookup(lookup, cfg.CacheSize, 0)
	}
	return lookup, source, closer, nil
}

func runImport(ctx context.Context, cfg config.CatalogConfig) error {
	catalog, err := items.LoadCatalog(cfg.ItemsFile)
	if err != nil {
		return err
	}
	set, err := tables.LoadSet(cfg.TablesFile)
	if err != nil {
		return err
	}

	db, err := database.OpenWithConfig(database.ConfigFromCatalog(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	nItems, err := db.ImportCatalog(ctx, catalog)
	if err != nil {
		return err
	}
	nTables, err := db.ImportTables(ctx, set)
	if err != nil {
		return err
	}
	logger.Always("Catalog imported", "items", nItems, "tables", nTables, "driver", cfg.Driver)
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("Metrics endpoint listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Metrics endpoint stopped", "error", err)
	}
}
