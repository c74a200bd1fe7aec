// Package treasure converts coins into treasure table draws.
package treasure

import (
	"github.com/shopspring/decimal"

	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/logger"
	"github.com/lawnchairsociety/lootforge/internal/metrics"
)

// Converter spends part of a coin bundle on treasure draws.
type Converter struct {
	tiers TierList
	src   dice.Source
}

// NewConverter creates a converter over a validated tier list.
func NewConverter(tiers TierList, src dice.Source) *Converter {
	if src == nil {
		src = dice.NewSource()
	}
	return &Converter{tiers: tiers, src: src}
}

// Tiers returns the converter's tier list.
func (c *Converter) Tiers() TierList {
	return c.tiers
}

// Convert decomposes each denomination of coins into candidate draws, keeps
// each draw with probability ratePercent/100 and deducts the kept draws'
// value (rounded up) from that denomination. It returns the remaining coins
// and the kept draws per tier. The input bundle is not modified.
func (c *Converter) Convert(coins currency.Bundle, ratePercent int) (currency.Bundle, Rolls) {
	remaining := coins.Clone()
	rolls := Rolls{}

	if ratePercent <= 0 || len(c.tiers) == 0 {
		return remaining, rolls
	}
	if ratePercent > 100 {
		ratePercent = 100
	}
	probability := float64(ratePercent) / 100

	for _, d := range currency.Denominations {
		amount := remaining[d]
		if amount <= 0 {
			continue
		}

		rateToGold := currency.Rate(d, currency.Gold)
		candidates := Decompose(decimal.NewFromInt(int64(amount)).Mul(rateToGold), c.tiers)

		spent := 0
		for _, tier := range c.tiers {
			n, ok := candidates[tier.ID]
			if !ok {
				continue
			}
			hits := GetHits(c.src, n, probability)
			if hits == 0 {
				continue
			}

			cost := decimal.NewFromInt(int64(hits * tier.Value)).Div(rateToGold).Ceil()
			spent += int(cost.IntPart())
			rolls[tier.ID] += hits
			metrics.TreasureDraws.WithLabelValues(tier.ID).Add(float64(hits))
		}

		if spent > amount {
			spent = amount
		}
		if spent > 0 {
			remaining.Sub(d, spent)
			metrics.CoinsConverted.WithLabelValues(d.String()).Add(float64(spent))
		}
	}

	if rolls.Total() > 0 {
		logger.Debug("Converted coins into treasure",
			"rate", ratePercent, "draws", rolls.Total(), "remaining", remaining.String())
	}
	return remaining, rolls
}

// GetHits runs attempts independent trials, each succeeding with the given
// probability, and returns the number of successes.
func GetHits(src dice.Source, attempts int, probability float64) int {
	hits := 0
	for i := 0; i < attempts; i++ {
		if src.Float64() < probability {
			hits++
		}
	}
	return hits
}
