package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/lootforge/internal/config"
	"github.com/lawnchairsociety/lootforge/internal/deterioration"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/dice/dicetest"
	"github.com/lawnchairsociety/lootforge/internal/items"
	"github.com/lawnchairsociety/lootforge/internal/treasure"
)

func TestSimulateCoinYield(t *testing.T) {
	cfg := config.DefaultConfig().Coins

	result := SimulateCoinYield(cfg, 2, 1, 0, 500, dice.NewSeededSource(7))
	assert.Equal(t, 500, result.Simulations)
	assert.GreaterOrEqual(t, result.EmptyRate, 0.0)
	assert.LessOrEqual(t, result.EmptyRate, 100.0)
	assert.LessOrEqual(t, result.MinGold, result.MedianGold)
	assert.LessOrEqual(t, result.MedianGold, result.MaxGold)
	assert.LessOrEqual(t, result.AvgGold, result.MaxGold)
}

func TestSimulateCoinYieldNeverEmptyWithMinFactor(t *testing.T) {
	cfg := config.DefaultConfig().Coins

	result := SimulateCoinYield(cfg, 5, 1, 1, 200, dice.NewSeededSource(3))
	assert.Zero(t, result.EmptyRate)
	assert.Greater(t, result.MinGold, 0.0)
}

func TestSimulateCoinYieldZeroIterations(t *testing.T) {
	result := SimulateCoinYield(config.DefaultConfig().Coins, 1, 1, 0, 0, dice.NewSeededSource(1))
	assert.Zero(t, result.AvgGold)
	assert.Empty(t, result.AvgCoins)
}

func TestSimulateCoinYieldNegativeRolls(t *testing.T) {
	result := SimulateCoinYield(config.DefaultConfig().Coins, 4, -1, 2, 25, dice.NewSeededSource(1))
	assert.Equal(t, 100.0, result.EmptyRate)
	assert.Zero(t, result.MaxGold)
	assert.Empty(t, result.AvgCoins)
}

func TestRunCoinYieldSim(t *testing.T) {
	ratings := []float64{0.25, 4, 11, 17}
	results := RunCoinYieldSim(config.DefaultConfig().Coins, ratings, 1, 1, 300, dice.NewSeededSource(11))
	require.Len(t, results, len(ratings))
	for i, r := range results {
		assert.Equal(t, ratings[i], r.Rating)
	}
	assert.Greater(t, results[3].AvgGold, results[0].AvgGold, "higher ratings should be richer")
}

func TestFactorDistribution(t *testing.T) {
	buckets := FactorDistribution(80, 0, 3, 1000, dice.NewSeededSource(5))

	total := 0
	for i, b := range buckets {
		assert.GreaterOrEqual(t, b.Factor, 0)
		assert.LessOrEqual(t, b.Factor, 3)
		if i > 0 {
			assert.Greater(t, b.Factor, buckets[i-1].Factor)
		}
		total += b.Count
	}
	assert.Equal(t, 1000, total)
}

func TestFactorDistributionZeroChance(t *testing.T) {
	buckets := FactorDistribution(0, 1, 3, 50, dice.NewSeededSource(5))
	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].Factor)
	assert.InDelta(t, 100.0, buckets[0].Percent, 0.001)
}

func TestFactorDistributionFullChanceHalvesEachLevel(t *testing.T) {
	buckets := FactorDistribution(100, 0, 3, 7000, dice.NewSeededSource(5))
	require.Len(t, buckets, 3)
	assert.Equal(t, 1, buckets[0].Factor)
	assert.InDelta(t, 57.1, buckets[0].Percent, 3)
	assert.InDelta(t, 28.6, buckets[1].Percent, 3)
	assert.InDelta(t, 14.3, buckets[2].Percent, 3)
}

func TestSimulateConversion(t *testing.T) {
	tiers, err := treasure.NewTierList(
		treasure.Tier{ID: "T10", Value: 10},
		treasure.Tier{ID: "T100", Value: 100},
		treasure.Tier{ID: "T500", Value: 500},
	)
	require.NoError(t, err)

	// every trial succeeds
	full := SimulateConversion(tiers, 1200, 100, 10, dicetest.Floats(0))
	assert.Equal(t, 4.0, full.AvgDraws)
	assert.InDelta(t, 1200.0, full.AvgConverted, 0.001)
	assert.InDelta(t, 100.0, full.ConvertedPct, 0.001)
	assert.Equal(t, map[string]float64{"T500": 2, "T100": 2}, full.AvgTierDraws)

	none := SimulateConversion(tiers, 1200, 0, 10, dice.NewSeededSource(1))
	assert.Zero(t, none.AvgDraws)
	assert.Zero(t, none.AvgConverted)
}

func TestSimulateConversionBelowMinimum(t *testing.T) {
	tiers, err := treasure.TiersFromConfig(config.DefaultTiers())
	require.NoError(t, err)

	result := SimulateConversion(tiers, 5, 100, 20, dice.NewSeededSource(1))
	assert.Zero(t, result.AvgDraws)
	assert.Zero(t, result.ConvertedPct)
}

func TestRunConversionSweep(t *testing.T) {
	tiers, err := treasure.TiersFromConfig(config.DefaultTiers())
	require.NoError(t, err)

	results := RunConversionSweep(tiers, []int{10, 100, 1000}, 33, 200, dice.NewSeededSource(9))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.LessOrEqual(t, r.AvgConverted, float64(r.Gold))
		assert.GreaterOrEqual(t, r.ConvertedPct, 0.0)
	}
}

func TestSimulateDecay(t *testing.T) {
	policy := deterioration.PolicyFromConfig(config.DefaultConfig().Deterioration)
	sword := &items.Item{ID: "longsword", Name: "Longsword", Type: items.Weapon}

	result := SimulateDecay(policy, sword, 4, 500, dice.NewSeededSource(13))
	sum := result.AvgSurviving + result.AvgDamaged + result.AvgBroken + result.AvgDestroyed
	assert.InDelta(t, 4.0, sum, 0.0001)
	assert.Zero(t, result.AvgDestroyed)
}

func TestSimulateDecayUntouchedLoot(t *testing.T) {
	policy := deterioration.PolicyFromConfig(config.DefaultConfig().Deterioration)
	gem := &items.Item{ID: "azurite", Name: "Azurite", Type: items.Loot}

	result := SimulateDecay(policy, gem, 3, 100, dice.NewSeededSource(13))
	assert.Equal(t, 3.0, result.AvgSurviving)
	assert.Equal(t, 100.0, result.IntactRate)
}

func TestRunDecaySweep(t *testing.T) {
	policy := deterioration.PolicyFromConfig(config.DefaultConfig().Deterioration)
	sample := SampleItems()

	results := RunDecaySweep(policy, sample, 1, 200, dice.NewSeededSource(2))
	require.Len(t, results, len(sample))

	byName := make(map[string]DecayResult)
	for _, r := range results {
		byName[r.Item] = r
	}
	assert.Zero(t, byName["Longsword"].AvgDestroyed)
	assert.Zero(t, byName["Longsword (damaged)"].AvgDamaged)
	assert.Equal(t, 1.0, byName["+1 Longsword"].AvgSurviving, "magic items are not breakable by default")
	assert.Zero(t, byName["Potion of Healing"].AvgDamaged)
}
