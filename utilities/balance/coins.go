// Package balance provides Monte Carlo simulation tools for loot balance testing.
package balance

import (
	"math"
	"sort"

	"github.com/lawnchairsociety/lootforge/internal/coins"
	"github.com/lawnchairsociety/lootforge/internal/config"
	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/successrate"
)

// CoinYieldResult holds aggregated coin yields for one challenge rating
type CoinYieldResult struct {
	Rating      float64
	Simulations int
	EmptyRate   float64 // Percentage of simulations that produced no coins
	AvgGold     float64 // Average total worth in gold
	MinGold     float64
	MaxGold     float64
	MedianGold  float64
	AvgCoins    map[currency.Denomination]float64
}

// newCoinGenerator builds a coin generator from the coin config
func newCoinGenerator(cfg config.CoinsConfig, src dice.Source) *coins.Generator {
	evaluator := successrate.NewEvaluator(src, successrate.NewSegmentCache())
	return coins.NewGenerator(dice.NewRoller(src), evaluator, cfg.Percentage, cfg.MaxFactor)
}

// SimulateCoinYield rolls coins iterations times for a creature of the
// given rating and aggregates the results
func SimulateCoinYield(cfg config.CoinsConfig, rating float64, rolls, minFactor, iterations int, src dice.Source) CoinYieldResult {
	gen := newCoinGenerator(cfg, src)
	result := CoinYieldResult{
		Rating:      rating,
		Simulations: iterations,
		AvgCoins:    make(map[currency.Denomination]float64),
	}
	if iterations <= 0 {
		return result
	}

	totals := make(map[currency.Denomination]int)
	values := make([]float64, 0, iterations)
	empty := 0
	sum := 0.0
	result.MinGold = math.MaxFloat64

	for i := 0; i < iterations; i++ {
		bundle := gen.Generate(coins.Rating(rating), rolls, minFactor)
		if bundle.IsEmpty() {
			empty++
		}
		for d, amount := range bundle {
			totals[d] += amount
		}

		gold := bundle.Value(currency.Gold).InexactFloat64()
		values = append(values, gold)
		sum += gold
		if gold < result.MinGold {
			result.MinGold = gold
		}
		if gold > result.MaxGold {
			result.MaxGold = gold
		}
	}

	n := float64(iterations)
	result.EmptyRate = float64(empty) / n * 100
	result.AvgGold = sum / n
	result.MedianGold = median(values)
	for d, total := range totals {
		result.AvgCoins[d] = float64(total) / n
	}
	return result
}

// RunCoinYieldSim runs SimulateCoinYield for each rating
func RunCoinYieldSim(cfg config.CoinsConfig, ratings []float64, rolls, minFactor, iterations int, src dice.Source) []CoinYieldResult {
	results := make([]CoinYieldResult, 0, len(ratings))
	for _, rating := range ratings {
		results = append(results, SimulateCoinYield(cfg, rating, rolls, minFactor, iterations, src))
	}
	return results
}

// FactorBucket is how often one factor came up
type FactorBucket struct {
	Factor  int
	Count   int
	Percent float64
}

// FactorDistribution evaluates the success rate iterations times and
// returns how often each factor between min and max was reached
func FactorDistribution(chancePercent, min, max, iterations int, src dice.Source) []FactorBucket {
	evaluator := successrate.NewEvaluator(src, successrate.NewSegmentCache())

	counts := make(map[int]int)
	for i := 0; i < iterations; i++ {
		counts[evaluator.Evaluate(chancePercent, min, max)]++
	}

	buckets := make([]FactorBucket, 0, len(counts))
	for factor, count := range counts {
		buckets = append(buckets, FactorBucket{
			Factor:  factor,
			Count:   count,
			Percent: float64(count) / float64(iterations) * 100,
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Factor < buckets[j].Factor })
	return buckets
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
