package exposure

import (
	"errors"
	"fmt"
)

// ErrMissingTotals is returned by Normalize when a row has no totals for its portfolio.
var ErrMissingTotals = errors.New("no contribution totals for portfolio")

// Totals is the sum of the raw contributions of every instrument of a portfolio group on a date.
type Totals struct {
	Key         PortfolioKey
	Instruments int
	Contrib     Risk
}

// TotalsTable is the arena of portfolio totals, in the order their key first appeared.
type TotalsTable struct {
	Totals []Totals
	index  map[PortfolioKey]int
}

// Len returns the number of portfolio partitions.
func (t *TotalsTable) Len() int { return len(t.Totals) }

// Lookup returns the totals for k.
func (t *TotalsTable) Lookup(k PortfolioKey) (*Totals, bool) {
	i, ok := t.index[k]
	if !ok {
		return nil, false
	}
	return &t.Totals[i], true
}

// Totalize sums the raw contributions of rows by PortfolioKey, ignoring missing contributions.
func Totalize(rows []Row) *TotalsTable {
	t := &TotalsTable{index: make(map[PortfolioKey]int)}
	for _, r := range rows {
		k := r.PortfolioKey()
		i, ok := t.index[k]
		if !ok {
			i = len(t.Totals)
			t.index[k] = i
			t.Totals = append(t.Totals, Totals{Key: k})
		}
		tot := &t.Totals[i]
		tot.Instruments++
		for _, m := range Measures {
			tot.Contrib[m] = nanAdd(tot.Contrib[m], r.Contrib[m])
		}
	}
	return t
}

// Normalize returns a copy of rows where each contribution weight is the
// raw contribution divided by its portfolio total.
//
// A weight is 0 when the division is not a number. A non zero contribution
// over a zero total stays infinite, and a negative total can give weights
// outside [0, 1]: the normalization is additive, not absolute.
func Normalize(rows []Row, totals *TotalsTable) ([]Row, error) {
	out := make([]Row, len(rows))
	for i, r := range rows {
		tot, ok := totals.Lookup(r.PortfolioKey())
		if !ok {
			return nil, fmt.Errorf("%w %v", ErrMissingTotals, r.PortfolioKey())
		}
		for _, m := range Measures {
			r.ContribWeight[m] = ratio(r.Contrib[m], tot.Contrib[m])
		}
		out[i] = r
	}
	return out, nil
}
