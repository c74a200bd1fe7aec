package dice

import (
	"errors"
	"testing"

	"github.com/lawnchairsociety/lootforge/internal/dice/dicetest"
)

func TestParse(t *testing.T) {
	tests := []struct {
		notation string
		want     Expr
	}{
		{"1d6", Expr{Count: 1, Faces: 6, Multiplier: 1}},
		{"3d6*50", Expr{Count: 3, Faces: 6, Multiplier: 50}},
		{"4d3-5", Expr{Count: 4, Faces: 3, Multiplier: 1, Modifier: -5}},
		{"2d4 + 1", Expr{Count: 2, Faces: 4, Multiplier: 1, Modifier: 1}},
		{"8d6*50+2", Expr{Count: 8, Faces: 6, Multiplier: 50, Modifier: 2}},
		{" 1d20 ", Expr{Count: 1, Faces: 20, Multiplier: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			got, err := Parse(tt.notation)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.notation, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.notation, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, notation := range []string{"", "d6", "abc", "1d", "1d6+", "1d6+abc"} {
		if _, err := Parse(notation); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidNotation", notation, err)
		}
	}
}

func TestExprString(t *testing.T) {
	for _, notation := range []string{"1d6", "3d6*50", "4d3-5", "4d3+2", "8d6*50-1"} {
		if got := MustParse(notation).String(); got != notation {
			t.Errorf("String() = %q, want %q", got, notation)
		}
	}
}

// bounds returns the lowest and highest totals e can produce.
func bounds(e Expr) (int, int) {
	m := e.multiplier()
	return e.Count*m + e.Modifier, e.Count*e.Faces*m + e.Modifier
}

func diceTerms(f Formula) int {
	n := 0
	for _, t := range f {
		if t.Dice != nil {
			n++
		}
	}
	return n
}

func TestRollRange(t *testing.T) {
	r := NewRoller(NewSeededSource(42))
	e := MustParse("2d6+3")
	for i := 0; i < 200; i++ {
		result := r.RollExpr(e)
		lo, hi := bounds(e)
		if result < lo || result > hi {
			t.Errorf("RollExpr(%s) = %d, expected %d-%d", e, result, lo, hi)
		}
	}
}

func TestRollMultiplier(t *testing.T) {
	r := NewRoller(dicetest.Max{})
	got, err := r.Roll("3d6*50")
	if err != nil {
		t.Fatalf("Roll error: %v", err)
	}
	if got != 900 {
		t.Errorf("Roll(3d6*50) with max dice = %d, want 900", got)
	}
}

func TestRollNegativeModifier(t *testing.T) {
	r := NewRoller(dicetest.Ints(0))
	got, _ := r.Roll("4d3-5")
	if got != -1 {
		t.Errorf("Roll(4d3-5) with min dice = %d, want -1", got)
	}
}

func TestRollDiceZero(t *testing.T) {
	r := NewRoller(NewSeededSource(1))
	if got := r.RollDice(0, 6); got != 0 {
		t.Errorf("RollDice(0, 6) = %d, want 0", got)
	}
	if got := r.RollDice(3, 0); got != 0 {
		t.Errorf("RollDice(3, 0) = %d, want 0", got)
	}
}

func TestD100(t *testing.T) {
	r := NewRoller(NewSeededSource(7))
	for i := 0; i < 500; i++ {
		result := r.D100()
		if result < 1 || result > 100 {
			t.Errorf("D100() = %d, expected 1-100", result)
		}
	}
}

func TestSeededSourceDeterministic(t *testing.T) {
	a := NewSeededSource(99)
	b := NewSeededSource(99)
	for i := 0; i < 50; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("sources with the same seed diverged")
		}
	}
}

func TestFormulaScale(t *testing.T) {
	tests := []struct {
		formula string
		factor  float64
		want    string
	}{
		{"1d8 + @mod", 0.5, "1d4 + @mod"},
		{"2d6", 0.5, "1d3"},
		{"1d10", 0.5, "1d5"},
		{"3d6 + 1d4 fire", 0.5, "2d3 + 1d2 fire"},
		{"1d12", 1, "1d12"},
		{"5", 0.5, "5"},
		{"", 0.5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			got := ParseFormula(tt.formula).Scale(tt.factor).String()
			if got != tt.want {
				t.Errorf("Scale(%q, %v) = %q, want %q", tt.formula, tt.factor, got, tt.want)
			}
		})
	}
}

func TestFormulaScaleDoesNotMutate(t *testing.T) {
	f := ParseFormula("2d6 + 2")
	_ = f.Scale(0.5)
	if f.String() != "2d6 + 2" {
		t.Errorf("original formula changed to %q", f.String())
	}
	if n := diceTerms(f); n != 1 {
		t.Errorf("formula has %d dice terms, want 1", n)
	}
}
