package treasure

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lawnchairsociety/lootforge/internal/config"
)

// Tier is a treasure table and the gold value of one draw from it.
type Tier struct {
	ID    string
	Value int
}

// TierList is a tier list sorted strictly descending by value.
type TierList []Tier

// ErrInvalidTiers is returned for empty, duplicated or non-positive tier lists.
var ErrInvalidTiers = errors.New("invalid treasure tiers")

// NewTierList sorts tiers by descending value and validates them.
func NewTierList(tiers ...Tier) (TierList, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidTiers)
	}

	list := append(TierList(nil), tiers...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Value > list[j].Value })

	seen := make(map[string]bool, len(list))
	for i, t := range list {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: tier with value %d has no table", ErrInvalidTiers, t.Value)
		}
		if t.Value <= 0 {
			return nil, fmt.Errorf("%w: tier %s has non-positive value %d", ErrInvalidTiers, t.ID, t.Value)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: duplicate tier %s", ErrInvalidTiers, t.ID)
		}
		seen[t.ID] = true
		if i > 0 && list[i-1].Value == t.Value {
			return nil, fmt.Errorf("%w: tiers %s and %s share value %d", ErrInvalidTiers, list[i-1].ID, t.ID, t.Value)
		}
	}
	return list, nil
}

// TiersFromConfig builds a tier list from configuration.
func TiersFromConfig(cfgs []config.TierConfig) (TierList, error) {
	tiers := make([]Tier, 0, len(cfgs))
	for _, c := range cfgs {
		tiers = append(tiers, Tier{ID: c.Table, Value: c.ValueGP})
	}
	return NewTierList(tiers...)
}

// MinimumValue is the value of the cheapest tier.
func (l TierList) MinimumValue() int {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Value
}

// Get returns the tier with the given id.
func (l TierList) Get(id string) (Tier, bool) {
	for _, t := range l {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}
