package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in minor units (cents). All pricing
// arithmetic happens on this integer type; decimal conversion is only
// for the API boundary.
type Money int64

const moneyExponent = 2

// MoneyFromDecimalString parses a decimal amount like "8.99" into minor
// units. Negative amounts and more than two fraction digits are rejected.
func MoneyFromDecimalString(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", s)
	}
	shifted := d.Shift(moneyExponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", s, moneyExponent)
	}
	return Money(shifted.IntPart()), nil
}

// Decimal returns the amount as an exact decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -moneyExponent)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(moneyExponent)
}

// MarshalJSON emits the amount as a decimal string ("8.99") so that no
// reader is tempted to round-trip it through binary floats.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// Accept a bare JSON number as well ("price": 8.99).
		s = string(b)
	}
	v, err := MoneyFromDecimalString(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
