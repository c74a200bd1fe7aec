// Package dice parses dice notation and rolls it against an injectable
// random source.
package dice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidNotation is returned when a formula is not valid dice notation.
var ErrInvalidNotation = errors.New("invalid dice notation")

// Expr is a parsed dice expression: Count dice of Faces sides, the sum
// multiplied by Multiplier and then shifted by Modifier.
//
//	"3d6"     -> {Count: 3, Faces: 6, Multiplier: 1}
//	"8d6*50"  -> {Count: 8, Faces: 6, Multiplier: 50}
//	"4d3-5"   -> {Count: 4, Faces: 3, Multiplier: 1, Modifier: -5}
type Expr struct {
	Count      int
	Faces      int
	Multiplier int
	Modifier   int
}

// exprRegex matches "NdF", "NdF*M", "NdF+B", "NdF*M-B" (spaces allowed around operators)
var exprRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:\s*[*x]\s*(\d+))?(?:\s*([+-])\s*(\d+))?$`)

// Parse parses dice notation into an Expr.
func Parse(notation string) (Expr, error) {
	matches := exprRegex.FindStringSubmatch(strings.TrimSpace(notation))
	if matches == nil {
		return Expr{}, fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}

	count, _ := strconv.Atoi(matches[1])
	faces, _ := strconv.Atoi(matches[2])
	e := Expr{Count: count, Faces: faces, Multiplier: 1}

	if matches[3] != "" {
		e.Multiplier, _ = strconv.Atoi(matches[3])
	}
	if matches[5] != "" {
		e.Modifier, _ = strconv.Atoi(matches[5])
		if matches[4] == "-" {
			e.Modifier = -e.Modifier
		}
	}

	return e, nil
}

// MustParse is like Parse but panics on invalid notation. Intended for
// package-level tables.
func MustParse(notation string) Expr {
	e, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return e
}

// String serializes the expression back to dice notation.
func (e Expr) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", e.Count, e.Faces)
	if e.Multiplier != 0 && e.Multiplier != 1 {
		fmt.Fprintf(&b, "*%d", e.Multiplier)
	}
	if e.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", e.Modifier)
	}
	return b.String()
}

func (e Expr) multiplier() int {
	if e.Multiplier == 0 {
		return 1
	}
	return e.Multiplier
}

// Roller rolls dice against a Source.
type Roller struct {
	src Source
}

// NewRoller creates a Roller. A nil source uses a freshly seeded one.
func NewRoller(src Source) *Roller {
	if src == nil {
		src = NewSource()
	}
	return &Roller{src: src}
}

// Source returns the random source backing this roller.
func (r *Roller) Source() Source {
	return r.src
}

// Roll parses and rolls a formula.
func (r *Roller) Roll(formula string) (int, error) {
	e, err := Parse(formula)
	if err != nil {
		return 0, err
	}
	return r.RollExpr(e), nil
}

// RollExpr rolls a parsed expression. Zero dice or zero faces roll nothing.
func (r *Roller) RollExpr(e Expr) int {
	return r.RollDice(e.Count, e.Faces)*e.multiplier() + e.Modifier
}

// RollDice rolls n dice with the specified number of sides and returns the total
func (r *Roller) RollDice(n, sides int) int {
	if sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += r.src.Intn(sides) + 1
	}
	return total
}

// D100 rolls a 100-sided die (1-100), used for percentile tables
func (r *Roller) D100() int {
	return r.src.Intn(100) + 1
}

// Percent returns a uniform value in [0, 100).
func (r *Roller) Percent() float64 {
	return r.src.Float64() * 100
}
