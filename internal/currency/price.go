package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Price is an amount in a single denomination.
type Price struct {
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	Denomination Denomination    `yaml:"denomination" json:"denomination"`
}

// NewPrice builds a price from a float amount.
func NewPrice(amount float64, d Denomination) Price {
	return Price{Amount: decimal.NewFromFloat(amount), Denomination: d}
}

// InCopper returns the price's worth in copper.
func (p Price) InCopper() decimal.Decimal {
	return Convert(p.Amount, p.Denomination, Copper)
}

// Scale multiplies the amount by f, keeping the denomination.
func (p Price) Scale(f decimal.Decimal) Price {
	return Price{Amount: p.Amount.Mul(f), Denomination: p.Denomination}
}

func (p Price) String() string {
	return fmt.Sprintf("%s%s", p.Amount.String(), p.Denomination)
}

// ClosestStandardPrice rounds a price down to whole copper and re-expresses
// it in the highest denomination that gives an integral amount.
func ClosestStandardPrice(p Price) Price {
	copper := p.InCopper().Floor()
	for i := len(Denominations) - 1; i >= 0; i-- {
		d := Denominations[i]
		amount := Convert(copper, Copper, d)
		if amount.IsInteger() {
			return Price{Amount: amount, Denomination: d}
		}
	}
	return Price{Amount: copper, Denomination: Copper}
}

// ParsePrice parses "15gp", "2.5 sp" or a bare number (gold).
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{Amount: decimal.Zero, Denomination: Gold}, nil
	}

	d := Gold
	if len(s) > 2 {
		if parsed, err := ParseDenomination(s[len(s)-2:]); err == nil {
			d = parsed
			s = strings.TrimSpace(s[:len(s)-2])
		}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if amount.IsNegative() {
		return Price{}, fmt.Errorf("invalid price %q: negative amount", s)
	}
	return Price{Amount: amount, Denomination: d}, nil
}

// UnmarshalYAML accepts either a "15gp" scalar or an {amount, denomination} map.
func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParsePrice(node.Value)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var raw struct {
		Amount       string       `yaml:"amount"`
		Denomination Denomination `yaml:"denomination"`
	}
	raw.Denomination = Gold
	if err := node.Decode(&raw); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return fmt.Errorf("invalid price amount %q: %w", raw.Amount, err)
	}
	*p = Price{Amount: amount, Denomination: raw.Denomination}
	return nil
}

// MarshalYAML writes the compact "15gp" form.
func (p Price) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}
