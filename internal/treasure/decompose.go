package treasure

import (
	"github.com/shopspring/decimal"
)

const (
	// usageNum/usageDen is the share of the matched draws actually spent
	// while lower tiers remain to be visited.
	usageNum = 2
	usageDen = 3
	// MaxLevelDiff is how many tiers are visited once the first match occurs.
	MaxLevelDiff = 4
	// MaxRollsPerLevel caps the draws assigned to one tier.
	MaxRollsPerLevel = 10
)

// Rolls maps tier ids to draw counts.
type Rolls map[string]int

// Total returns the number of draws across all tiers.
func (r Rolls) Total() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

// Merge adds other's draws into r.
func (r Rolls) Merge(other Rolls) {
	for id, n := range other {
		if n > 0 {
			r[id] += n
		}
	}
}

// Decompose splits valueLeft (in gold) into draws per tier, starting at the
// richest tier. Once a tier matches, at most MaxLevelDiff tiers are visited,
// each getting at most MaxRollsPerLevel draws, and two thirds of the matched
// draws are spent while cheaper tiers remain.
func Decompose(valueLeft decimal.Decimal, tiers TierList) Rolls {
	rolls := Rolls{}
	if len(tiers) == 0 {
		return rolls
	}

	minimum := decimal.NewFromInt(int64(tiers.MinimumValue()))
	usedLevels := 0

	for i, tier := range tiers {
		if valueLeft.LessThan(minimum) {
			break
		}

		value := decimal.NewFromInt(int64(tier.Value))
		n := int(valueLeft.Div(value).Floor().IntPart())
		if n > 0 || usedLevels > 0 {
			usedLevels++
		}

		last := i == len(tiers)-1
		if n > 0 {
			if usedLevels < MaxLevelDiff && !last {
				n = ceilUsage(n)
			}
			if n > MaxRollsPerLevel {
				n = MaxRollsPerLevel
			}
			rolls[tier.ID] = n
			valueLeft = valueLeft.Sub(value.Mul(decimal.NewFromInt(int64(n))))
		}

		if usedLevels >= MaxLevelDiff {
			break
		}
	}

	return rolls
}

// ceilUsage returns ceil(n * usageNum/usageDen).
func ceilUsage(n int) int {
	return (n*usageNum + usageDen - 1) / usageDen
}
