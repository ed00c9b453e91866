package renderer

import (
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is an exposure expressed in the portfolio currency.
type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency,omitempty"`
}

// String formats the amount with the currency symbol and digits. An unknown
// or missing currency gives a plain number with two decimals, and an amount
// too large for the formatter gives the plain number followed by the code.
func (a Amount) String() string {
	if s, ok := nonFinite(a.Value); ok {
		return s
	}
	d := decimal.NewFromFloat(a.Value)
	cur := money.GetCurrency(a.Currency)
	if cur == nil {
		return d.StringFixed(2)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	if !minor.BigInt().IsInt64() {
		return d.StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}
	return cur.Formatter().Format(minor.IntPart())
}

// Weight is a ratio rendered as a percentage.
type Weight float64

func (w Weight) String() string {
	if s, ok := nonFinite(float64(w)); ok {
		return s
	}
	return decimal.NewFromFloat(float64(w)).Shift(2).StringFixed(2) + "%"
}

// nonFinite returns the text of an infinite or NaN value; decimal cannot represent them.
func nonFinite(f float64) (string, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	return "", false
}
