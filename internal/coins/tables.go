package coins

import (
	"github.com/lawnchairsociety/lootforge/internal/currency"
	"github.com/lawnchairsociety/lootforge/internal/dice"
)

// Draw is one coin roll of a table result: Dice.Count is multiplied by the
// roll factor before rolling, and the total by Multiplier.
type Draw struct {
	Denomination currency.Denomination
	Dice         dice.Expr
}

// Rule maps d100 results up to UpperBound (inclusive) to a set of draws.
type Rule struct {
	UpperBound int
	Draws      []Draw
}

// Bracket is the rule table used for ratings up to MaxRating (inclusive).
type Bracket struct {
	MaxRating int
	Rules     []Rule
}

func draw(d currency.Denomination, notation string) Draw {
	return Draw{Denomination: d, Dice: dice.MustParse(notation)}
}

const (
	cp = currency.Copper
	sp = currency.Silver
	ep = currency.Electrum
	gp = currency.Gold
	pp = currency.Platinum
)

// Brackets are the individual treasure tables, checked in order. The last
// bracket covers every higher rating.
var Brackets = []Bracket{
	{
		MaxRating: 4,
		Rules: []Rule{
			{30, []Draw{draw(cp, "5d6")}},
			{60, []Draw{draw(sp, "4d6")}},
			{70, []Draw{draw(ep, "3d6")}},
			{95, []Draw{draw(gp, "3d6")}},
			{100, []Draw{draw(pp, "1d6")}},
		},
	},
	{
		MaxRating: 10,
		Rules: []Rule{
			{30, []Draw{draw(cp, "8d6*50"), draw(ep, "2d6*5")}},
			{60, []Draw{draw(sp, "6d6*10"), draw(gp, "4d6*5")}},
			{70, []Draw{draw(ep, "6d6*5"), draw(gp, "4d6*5")}},
			{95, []Draw{draw(gp, "8d6*5")}},
			{100, []Draw{draw(gp, "4d6*5"), draw(pp, "3d6")}},
		},
	},
	{
		MaxRating: 16,
		Rules: []Rule{
			{20, []Draw{draw(sp, "8d6*50"), draw(gp, "2d6*50")}},
			{35, []Draw{draw(ep, "2d6*50"), draw(gp, "2d6*50")}},
			{75, []Draw{draw(gp, "4d6*50"), draw(pp, "2d6*5")}},
			{100, []Draw{draw(gp, "4d6*50"), draw(pp, "4d6*5")}},
		},
	},
	{
		MaxRating: -1,
		Rules: []Rule{
			{15, []Draw{draw(ep, "4d6*500"), draw(gp, "8d6*100")}},
			{55, []Draw{draw(gp, "4d6*250"), draw(pp, "2d6*50")}},
			{100, []Draw{draw(gp, "4d6*250"), draw(pp, "4d6*50")}},
		},
	},
}

// BracketFor returns the table for a rating.
func BracketFor(rating float64) Bracket {
	for _, b := range Brackets {
		if b.MaxRating >= 0 && rating < float64(b.MaxRating+1) {
			return b
		}
	}
	return Brackets[len(Brackets)-1]
}

// Select returns the first rule whose upper bound covers roll.
func (b Bracket) Select(roll int) (Rule, bool) {
	for _, r := range b.Rules {
		if roll <= r.UpperBound {
			return r, true
		}
	}
	return Rule{}, false
}
