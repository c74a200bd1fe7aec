package dice

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var termRegex = regexp.MustCompile(`(\d+)d(\d+)`)

// Term is one piece of a free-form formula: either a dice pair or literal
// text kept verbatim (operators, flat bonuses, "@mod" references).
type Term struct {
	Dice *Expr
	Text string
}

// Formula is a damage-style formula such as "1d8 + @mod" or "2d6 + 1d4",
// split into dice terms and literal text. It is parsed once and serialized
// back with String, so dice terms can be rewritten without string surgery.
type Formula []Term

// ParseFormula splits a formula into dice and text terms.
func ParseFormula(s string) Formula {
	var f Formula
	last := 0
	for _, loc := range termRegex.FindAllStringSubmatchIndex(s, -1) {
		if loc[0] > last {
			f = append(f, Term{Text: s[last:loc[0]]})
		}
		count, _ := strconv.Atoi(s[loc[2]:loc[3]])
		faces, _ := strconv.Atoi(s[loc[4]:loc[5]])
		f = append(f, Term{Dice: &Expr{Count: count, Faces: faces, Multiplier: 1}})
		last = loc[1]
	}
	if last < len(s) {
		f = append(f, Term{Text: s[last:]})
	}
	return f
}

// Scale returns a copy of the formula where every dice term has both its
// count and its faces replaced by ceil(value * factor).
func (f Formula) Scale(factor float64) Formula {
	out := make(Formula, len(f))
	for i, t := range f {
		if t.Dice == nil {
			out[i] = t
			continue
		}
		scaled := *t.Dice
		scaled.Count = int(math.Ceil(float64(scaled.Count) * factor))
		scaled.Faces = int(math.Ceil(float64(scaled.Faces) * factor))
		out[i] = Term{Dice: &scaled}
	}
	return out
}

func (f Formula) String() string {
	var b strings.Builder
	for _, t := range f {
		if t.Dice != nil {
			b.WriteString(strconv.Itoa(t.Dice.Count))
			b.WriteByte('d')
			b.WriteString(strconv.Itoa(t.Dice.Faces))
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
