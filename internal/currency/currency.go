// Package currency defines coin denominations, coin bundles and the fixed
// cross-rate table every conversion goes through.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Denomination is a coin type. Values are ordered by worth.
type Denomination int

const (
	Copper Denomination = iota
	Silver
	Electrum
	Gold
	Platinum
)

// Denominations lists every denomination from lowest to highest value.
var Denominations = []Denomination{Copper, Silver, Electrum, Gold, Platinum}

var symbols = map[Denomination]string{
	Copper:   "cp",
	Silver:   "sp",
	Electrum: "ep",
	Gold:     "gp",
	Platinum: "pp",
}

// String returns the coin symbol ("cp", "sp", "ep", "gp", "pp").
func (d Denomination) String() string {
	if s, ok := symbols[d]; ok {
		return s
	}
	return fmt.Sprintf("Denomination(%d)", int(d))
}

// Valid reports whether d is one of the five known denominations.
func (d Denomination) Valid() bool {
	return d >= Copper && d <= Platinum
}

// ParseDenomination parses a coin symbol, case-insensitively.
func ParseDenomination(s string) (Denomination, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, sym := range symbols {
		if sym == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown denomination: %q", s)
}

// MarshalText implements encoding.TextMarshaler so denominations can be used
// as YAML/JSON map keys.
func (d Denomination) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid denomination %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Denomination) UnmarshalText(text []byte) error {
	parsed, err := ParseDenomination(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// worthInCopper is the value of one coin of each denomination in copper.
// 1 gp = 100 cp = 10 sp = 2 ep = 0.1 pp.
var worthInCopper = map[Denomination]int64{
	Copper:   1,
	Silver:   10,
	Electrum: 50,
	Gold:     100,
	Platinum: 1000,
}

// rates[from][to] is how many "to" coins one "from" coin is worth.
var rates = buildRates()

func buildRates() map[Denomination]map[Denomination]decimal.Decimal {
	table := make(map[Denomination]map[Denomination]decimal.Decimal, len(Denominations))
	for _, from := range Denominations {
		row := make(map[Denomination]decimal.Decimal, len(Denominations))
		for _, to := range Denominations {
			row[to] = decimal.NewFromInt(worthInCopper[from]).Div(decimal.NewFromInt(worthInCopper[to]))
		}
		table[from] = row
	}
	return table
}

// Rate returns how many coins of "to" one coin of "from" is worth.
func Rate(from, to Denomination) decimal.Decimal {
	return rates[from][to]
}

// Convert converts an amount of one denomination into another. The result
// may be fractional.
func Convert(amount decimal.Decimal, from, to Denomination) decimal.Decimal {
	return amount.Mul(Rate(from, to))
}
