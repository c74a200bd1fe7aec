package balance

import (
	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/treasure"
)

// ConversionResult holds aggregated coin to treasure conversions for one
// starting amount
type ConversionResult struct {
	Gold         int
	Rate         int
	Simulations  int
	AvgDraws     float64
	AvgConverted float64 // Average gold worth turned into treasure draws
	ConvertedPct float64
	AvgTierDraws map[string]float64
}

// SimulateConversion converts gold pieces into treasure draws iterations
// times at the given rate
func SimulateConversion(tiers treasure.TierList, gold, ratePercent, iterations int, src dice.Source) ConversionResult {
	conv := treasure.NewConverter(tiers, src)
	result := ConversionResult{
		Gold:         gold,
		Rate:         ratePercent,
		Simulations:  iterations,
		AvgTierDraws: make(map[string]float64),
	}
	if iterations <= 0 {
		return result
	}

	start := currency.NewBundle()
	start.Add(currency.Gold, gold)

	draws := 0
	converted := 0.0
	perTier := make(map[string]int)
	for i := 0; i < iterations; i++ {
		remaining, rolls := conv.Convert(start, ratePercent)
		draws += rolls.Total()
		converted += float64(gold) - remaining.Value(currency.Gold).InexactFloat64()
		for id, n := range rolls {
			perTier[id] += n
		}
	}

	n := float64(iterations)
	result.AvgDraws = float64(draws) / n
	result.AvgConverted = converted / n
	if gold > 0 {
		result.ConvertedPct = result.AvgConverted / float64(gold) * 100
	}
	for id, total := range perTier {
		result.AvgTierDraws[id] = float64(total) / n
	}
	return result
}

// RunConversionSweep runs SimulateConversion for each starting amount
func RunConversionSweep(tiers treasure.TierList, amounts []int, ratePercent, iterations int, src dice.Source) []ConversionResult {
	results := make([]ConversionResult, 0, len(amounts))
	for _, gold := range amounts {
		results = append(results, SimulateConversion(tiers, gold, ratePercent, iterations, src))
	}
	return results
}
