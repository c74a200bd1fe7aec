// balance is a Monte Carlo simulator for testing loot balance in lootforge.
//
// Usage:
//
//	balance [command] [options]
//
// Commands:
//
//	coins      - Average coin yield per challenge rating
//	factors    - Distribution of roll factors for a success chance
//	convert    - How much gold turns into treasure draws
//	decay      - Item survival under deterioration
//	sweep      - Run every simulation with the configured settings
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/lootforge/internal/config"
	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/deterioration"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/logger"
	"github.com/lawnchairsociety/lootforge/internal/treasure"
	"github.com/lawnchairsociety/lootforge/utilities/balance"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// only errors; generators log every roll
	logger.SetOutput(os.Stderr, "text", "error")

	switch os.Args[1] {
	case "coins":
		runCoinSim()
	case "factors":
		runFactorSim()
	case "convert":
		runConvertSim()
	case "decay":
		runDecaySim()
	case "sweep":
		runSweep()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lootforge Balance Simulator

A Monte Carlo simulator for testing loot balance.

Usage: balance <command> [options]

Commands:
  coins     Average coin yield per challenge rating
  factors   Distribution of roll factors for a success chance
  convert   How much gold turns into treasure draws
  decay     Item survival under deterioration
  sweep     Run every simulation with the configured settings

Examples:
  balance coins -ratings=0.5,2,5,11,17 -rolls=1
  balance factors -chance=80 -max=3
  balance convert -gold=10,100,1000,10000 -rate=33
  balance decay -quantity=5 -break=80 -damage=95
  balance sweep -config=data/loot.yaml

Use "balance <command> -h" for more information about a command.`)
}

func loadConfig(path string) *config.LootConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config %s: %v\n", path, err)
		os.Exit(1)
	}
	return cfg
}

func newSource(seed int64) dice.Source {
	if seed != 0 {
		return dice.NewSeededSource(seed)
	}
	return dice.NewSource()
}

func parseFloats(s string) []float64 {
	var values []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid number %q\n", part)
			os.Exit(1)
		}
		values = append(values, v)
	}
	return values
}

func parseInts(s string) []int {
	var values []int
	for _, v := range parseFloats(s) {
		values = append(values, int(v))
	}
	return values
}

func runCoinSim() {
	fs := flag.NewFlagSet("coins", flag.ExitOnError)
	configFile := fs.String("config", "data/loot.yaml", "Loot config file")
	ratings := fs.String("ratings", "0.25,1,2,4,5,8,10,11,14,16,17,20,24,30", "Comma separated challenge ratings")
	rolls := fs.Int("rolls", 1, "Coin rolls per creature")
	minFactor := fs.Int("min-factor", 0, "Minimum roll factor (treasure level of a pile)")
	chance := fs.Int("chance", -1, "Coin chance percentage (default: from config)")
	maxFactor := fs.Int("max-factor", -1, "Maximum roll factor (default: from config)")
	iterations := fs.Int("iterations", 10000, "Simulations per rating")
	seed := fs.Int64("seed", 0, "Random seed (default: random)")
	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configFile).Coins
	if *chance >= 0 {
		cfg.Percentage = *chance
	}
	if *maxFactor >= 0 {
		cfg.MaxFactor = *maxFactor
	}

	fmt.Println("=== Coin Yield Simulation ===")
	fmt.Println()
	fmt.Printf("Chance: %d%%, Max Factor: %d, Rolls: %d, Min Factor: %d\n", cfg.Percentage, cfg.MaxFactor, *rolls, *minFactor)
	fmt.Printf("Iterations: %d\n", *iterations)
	fmt.Println()

	results := balance.RunCoinYieldSim(cfg, parseFloats(*ratings), *rolls, *minFactor, *iterations, newSource(*seed))
	printCoinResults(results)
}

func printCoinResults(results []balance.CoinYieldResult) {
	fmt.Println("   CR |  Empty | Avg gp    | Median gp | Min gp    | Max gp     | Avg coins")
	fmt.Println("------+--------+-----------+-----------+-----------+------------+----------")
	for _, r := range results {
		fmt.Printf("%5g | %5.1f%% | %9.1f | %9.1f | %9.1f | %10.1f | %s\n",
			r.Rating, r.EmptyRate, r.AvgGold, r.MedianGold, r.MinGold, r.MaxGold, formatAvgCoins(r.AvgCoins))
	}
}

func formatAvgCoins(avg map[currency.Denomination]float64) string {
	parts := make([]string, 0, len(avg))
	for i := len(currency.Denominations) - 1; i >= 0; i-- {
		d := currency.Denominations[i]
		if v, ok := avg[d]; ok && v > 0 {
			parts = append(parts, fmt.Sprintf("%.1f%s", v, d))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func runFactorSim() {
	fs := flag.NewFlagSet("factors", flag.ExitOnError)
	chance := fs.Int("chance", 80, "Success chance percentage")
	minFactor := fs.Int("min", 0, "Minimum factor")
	maxFactor := fs.Int("max", 3, "Maximum factor")
	iterations := fs.Int("iterations", 100000, "Number of evaluations")
	seed := fs.Int64("seed", 0, "Random seed (default: random)")
	fs.Parse(os.Args[2:])

	fmt.Println("=== Factor Distribution ===")
	fmt.Println()
	fmt.Printf("Chance: %d%%, Range: %d-%d, Iterations: %d\n", *chance, *minFactor, *maxFactor, *iterations)
	fmt.Println()

	buckets := balance.FactorDistribution(*chance, *minFactor, *maxFactor, *iterations, newSource(*seed))
	printFactorBuckets(buckets)
}

func printFactorBuckets(buckets []balance.FactorBucket) {
	fmt.Println("Factor |   Count | Percent")
	fmt.Println("-------+---------+--------")
	for _, b := range buckets {
		fmt.Printf("%6d | %7d | %6.2f%% %s\n", b.Factor, b.Count, b.Percent, strings.Repeat("#", int(b.Percent/2)))
	}
}

func runConvertSim() {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	configFile := fs.String("config", "data/loot.yaml", "Loot config file")
	gold := fs.String("gold", "5,10,25,50,100,250,500,1000,2500,5000,10000", "Comma separated gold amounts")
	rate := fs.Int("rate", -1, "Conversion percentage (default: from config)")
	iterations := fs.Int("iterations", 10000, "Simulations per amount")
	seed := fs.Int64("seed", 0, "Random seed (default: random)")
	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configFile)
	if *rate >= 0 {
		cfg.Treasure.ConversionPercentage = *rate
	}
	tiers, err := treasure.TiersFromConfig(cfg.Treasure.Tiers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid treasure tiers: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Treasure Conversion Simulation ===")
	fmt.Println()
	fmt.Printf("Rate: %d%%, Tiers: %d, Iterations: %d\n", cfg.Treasure.ConversionPercentage, len(tiers), *iterations)
	fmt.Println()

	results := balance.RunConversionSweep(tiers, parseInts(*gold), cfg.Treasure.ConversionPercentage, *iterations, newSource(*seed))
	printConversionResults(results)
}

func printConversionResults(results []balance.ConversionResult) {
	fmt.Println("   Gold | Avg Draws | Avg Converted | Converted | Top tiers")
	fmt.Println("--------+-----------+---------------+-----------+----------")
	for _, r := range results {
		fmt.Printf("%7d | %9.2f | %13.1f | %8.1f%% | %s\n",
			r.Gold, r.AvgDraws, r.AvgConverted, r.ConvertedPct, formatTierDraws(r.AvgTierDraws, 3))
	}
}

func formatTierDraws(draws map[string]float64, limit int) string {
	ids := make([]string, 0, len(draws))
	for id := range draws {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if draws[ids[i]] != draws[ids[j]] {
			return draws[ids[i]] > draws[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s %.2f", id, draws[id]))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func runDecaySim() {
	fs := flag.NewFlagSet("decay", flag.ExitOnError)
	configFile := fs.String("config", "data/loot.yaml", "Loot config file")
	quantity := fs.Int("quantity", 1, "Units per stack")
	breakChance := fs.Int("break", -1, "Break chance percentage (default: from config)")
	damageChance := fs.Int("damage", -1, "Damage chance percentage (default: from config)")
	magic := fs.Bool("magic", false, "Allow magic items to break")
	iterations := fs.Int("iterations", 10000, "Simulations per item")
	seed := fs.Int64("seed", 0, "Random seed (default: random)")
	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configFile).Deterioration
	if *breakChance >= 0 {
		cfg.BreakChance = *breakChance
	}
	if *damageChance >= 0 {
		cfg.DamageChance = *damageChance
	}
	if *magic {
		cfg.BreakableMagicItems = true
	}
	policy := deterioration.PolicyFromConfig(cfg)

	fmt.Println("=== Deterioration Simulation ===")
	fmt.Println()
	fmt.Printf("Break: %d%% (%s), Damage: %d%% (%s), Magic breakable: %v\n",
		policy.BreakChance, policy.Breakable, policy.DamageChance, policy.Damageable, policy.BreakableMagic)
	fmt.Printf("Quantity: %d, Iterations: %d\n", *quantity, *iterations)
	fmt.Println()

	results := balance.RunDecaySweep(policy, balance.SampleItems(), *quantity, *iterations, newSource(*seed))
	printDecayResults(results)
}

func printDecayResults(results []balance.DecayResult) {
	fmt.Println("Item                  | Surviving | Damaged | Broken | Destroyed | Intact")
	fmt.Println("----------------------+-----------+---------+--------+-----------+-------")
	for _, r := range results {
		fmt.Printf("%-21s | %9.2f | %7.2f | %6.2f | %9.2f | %5.1f%%\n",
			r.Item, r.AvgSurviving, r.AvgDamaged, r.AvgBroken, r.AvgDestroyed, r.IntactRate)
	}
}

func runSweep() {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	configFile := fs.String("config", "data/loot.yaml", "Loot config file")
	iterations := fs.Int("iterations", 2000, "Simulations per data point")
	seed := fs.Int64("seed", 0, "Random seed (default: random)")
	fs.Parse(os.Args[2:])

	cfg := loadConfig(*configFile)
	src := newSource(*seed)

	fmt.Println("=== Loot Balance Sweep ===")
	fmt.Printf("Config: %s, Iterations: %d\n", *configFile, *iterations)

	fmt.Println()
	fmt.Println("--- Creature coins (1 roll) ---")
	ratings := []float64{0.25, 1, 4, 5, 10, 11, 16, 17, 30}
	printCoinResults(balance.RunCoinYieldSim(cfg.Coins, ratings, 1, 0, *iterations, src))

	fmt.Println()
	fmt.Printf("--- Treasure pile coins (level %d) ---\n", cfg.Treasure.DefaultLevel)
	printCoinResults(balance.RunCoinYieldSim(cfg.Coins, ratings, cfg.Treasure.DefaultLevel, cfg.Treasure.DefaultLevel, *iterations, src))

	fmt.Println()
	fmt.Printf("--- Coin factors (%d%%, max %d) ---\n", cfg.Coins.Percentage, cfg.Coins.MaxFactor)
	printFactorBuckets(balance.FactorDistribution(cfg.Coins.Percentage, 0, cfg.Coins.MaxFactor, *iterations, src))

	fmt.Println()
	fmt.Printf("--- Treasure conversion (%d%%) ---\n", cfg.Treasure.ConversionPercentage)
	tiers, err := treasure.TiersFromConfig(cfg.Treasure.Tiers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid treasure tiers: %v\n", err)
		os.Exit(1)
	}
	amounts := []int{10, 50, 100, 500, 1000, 5000, 10000}
	printConversionResults(balance.RunConversionSweep(tiers, amounts, cfg.Treasure.ConversionPercentage, *iterations, src))

	fmt.Println()
	fmt.Println("--- Deterioration (1 unit) ---")
	policy := deterioration.PolicyFromConfig(cfg.Deterioration)
	printDecayResults(balance.RunDecaySweep(policy, balance.SampleItems(), 1, *iterations, src))
}
