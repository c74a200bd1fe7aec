// Package coins generates individual treasure coin bundles from a power
// rating using tiered d100 tables.
package coins

import (
	"strconv"
	"strings"

	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/logger"
	"github.com/lawnchairsociety/lootforge/internal/metrics"
	"github.com/lawnchairsociety/lootforge/internal/successrate"
)

// PowerSource supplies the rating coins are generated for. ok is false when
// the source is not eligible for coin generation.
type PowerSource interface {
	PowerRating() (rating float64, ok bool)
}

// Rating is a fixed power rating.
type Rating float64

// PowerRating implements PowerSource.
func (r Rating) PowerRating() (float64, bool) {
	return float64(r), true
}

// Generator rolls coin bundles.
type Generator struct {
	roller    *dice.Roller
	evaluator *successrate.Evaluator

	// Chance is the percentage chance of a roll producing coins.
	Chance int
	// MaxFactor caps the factor a single roll can reach.
	MaxFactor int
}

// NewGenerator creates a coin generator.
func NewGenerator(roller *dice.Roller, evaluator *successrate.Evaluator, chance, maxFactor int) *Generator {
	return &Generator{
		roller:    roller,
		evaluator: evaluator,
		Chance:    chance,
		MaxFactor: maxFactor,
	}
}

// Generate rolls rollCount independent coin rolls for source and returns
// their sum. minFactor raises the floor of every roll's factor. An
// ineligible or nil source, or a non-positive rollCount, yields an empty
// bundle.
func (g *Generator) Generate(source PowerSource, rollCount, minFactor int) currency.Bundle {
	coins := currency.NewBundle()
	if rollCount <= 0 {
		return coins
	}

	if source == nil {
		logger.Warning("Trying to generate coins without a power source")
		return coins
	}
	rating, ok := source.PowerRating()
	if !ok {
		logger.Warning("Trying to generate coins for an ineligible source", "source", source)
		return coins
	}

	factors := make([]string, 0, rollCount)
	for i := 0; i < rollCount; i++ {
		factor := g.evaluator.Evaluate(g.Chance, minFactor, g.MaxFactor)
		if factor < minFactor {
			factor = minFactor
		}
		factors = append(factors, strconv.Itoa(factor))
		metrics.CoinFactor.Observe(float64(factor))
		if factor < 1 {
			continue
		}
		coins.Merge(g.Roll(rating, factor))
	}

	if coins.IsEmpty() {
		logger.Debug("No coins generated", "rolls", rollCount, "rating", rating, "factors", strings.Join(factors, ","))
	} else {
		logger.Debug("Generated coins", "coins", coins.String(), "rolls", rollCount, "rating", rating, "factors", strings.Join(factors, ","))
		amounts := make(map[string]int, len(coins))
		for d, amount := range coins {
			amounts[d.String()] = amount
		}
		metrics.RecordCoins(amounts)
	}

	return coins
}

// Roll performs a single table roll for rating at the given factor.
func (g *Generator) Roll(rating float64, factor int) currency.Bundle {
	coins := currency.NewBundle()
	if factor < 1 {
		return coins
	}

	rule, ok := BracketFor(rating).Select(g.roller.D100())
	if !ok {
		return coins
	}

	for _, d := range rule.Draws {
		expr := d.Dice
		expr.Count *= factor
		coins.Add(d.Denomination, g.roller.RollExpr(expr))
	}
	return coins
}
