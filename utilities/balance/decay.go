package balance

import (
	"github.com/lawnchairsociety/lootforge/internal/deterioration"
	"github.com/lawnchairsociety/lootforge/internal/dice"
	"github.com/lawnchairsociety/lootforge/internal/items"
)

// DecayResult holds aggregated deterioration outcomes for one item stack
type DecayResult struct {
	Item         string
	Quantity     int
	Simulations  int
	AvgSurviving float64
	AvgDamaged   float64
	AvgBroken    float64
	AvgDestroyed float64
	IntactRate   float64 // Percentage of simulations where nothing changed
}

// SimulateDecay deteriorates a stack of quantity units iterations times
func SimulateDecay(policy deterioration.Policy, item *items.Item, quantity, iterations int, src dice.Source) DecayResult {
	d := deterioration.New(policy, nil, src)
	result := DecayResult{
		Item:        item.Name,
		Quantity:    quantity,
		Simulations: iterations,
	}
	if iterations <= 0 {
		return result
	}

	var total deterioration.Outcome
	intact := 0
	for i := 0; i < iterations; i++ {
		o := d.BreakStack(item, quantity)
		total.Surviving += o.Surviving
		total.Damaged += o.Damaged
		total.Broken += o.Broken
		total.Destroyed += o.Destroyed
		if !o.Changed() {
			intact++
		}
	}

	n := float64(iterations)
	result.AvgSurviving = float64(total.Surviving) / n
	result.AvgDamaged = float64(total.Damaged) / n
	result.AvgBroken = float64(total.Broken) / n
	result.AvgDestroyed = float64(total.Destroyed) / n
	result.IntactRate = float64(intact) / n * 100
	return result
}

// SampleItems returns one item of every type, plus a damaged and a magic
// weapon
func SampleItems() []*items.Item {
	return []*items.Item{
		{ID: "longsword", Name: "Longsword", Type: items.Weapon},
		{ID: "longsword_damaged", Name: "Longsword (damaged)", Type: items.Weapon},
		{ID: "longsword_1", Name: "+1 Longsword", Type: items.Weapon, Magic: true},
		{ID: "chain_mail", Name: "Chain Mail", Type: items.Equipment},
		{ID: "potion_of_healing", Name: "Potion of Healing", Type: items.Consumable},
		{ID: "backpack", Name: "Backpack", Type: items.Backpack},
		{ID: "thieves_tools", Name: "Thieves' Tools", Type: items.Tool},
		{ID: "azurite", Name: "Azurite", Type: items.Loot},
	}
}

// RunDecaySweep runs SimulateDecay for each item
func RunDecaySweep(policy deterioration.Policy, sample []*items.Item, quantity, iterations int, src dice.Source) []DecayResult {
	results := make([]DecayResult, 0, len(sample))
	for _, item := range sample {
		results = append(results, SimulateDecay(policy, item, quantity, iterations, src))
	}
	return results
}
