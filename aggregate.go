package exposure

import (
	"math"

	"github.com/etnz/exposure/date"
)

// InstrumentGroup is the aggregate of all the holdings sharing an InstrumentKey.
//
// Sums ignore missing values (a sum of nothing is 0), maxes ignore missing
// values too but stay NaN when every value is missing.
type InstrumentGroup struct {
	Key      InstrumentKey
	Holdings int // number of holdings aggregated

	NAVDate  date.Date    // max hold date
	Currency Null[string] // max portfolio currency
	AUM      float64      // max

	Amount              float64 // sum of weighted amounts
	DurationExposure    float64 // sum
	CurrencyExposure    float64 // sum
	DeltaAdjustedSpread float64 // sum

	// Risk is the max of each measure, the convexity being taken in absolute value.
	Risk Risk
}

// InstrumentTable is the arena of instrument groups, in the order their key first appeared.
type InstrumentTable struct {
	Groups []InstrumentGroup
	index  map[InstrumentKey]int
}

// Len returns the number of groups.
func (t *InstrumentTable) Len() int { return len(t.Groups) }

// Lookup returns the group for k.
func (t *InstrumentTable) Lookup(k InstrumentKey) (*InstrumentGroup, bool) {
	i, ok := t.index[k]
	if !ok {
		return nil, false
	}
	return &t.Groups[i], true
}

// Aggregate derives the exposures of every holding and reduces them by InstrumentKey.
//
// Holdings with missing key fields are kept in their own group.
func Aggregate(holdings []Holding, p Policy) *InstrumentTable {
	t := &InstrumentTable{
		Groups: make([]InstrumentGroup, 0, len(holdings)),
		index:  make(map[InstrumentKey]int, len(holdings)),
	}
	for _, h := range holdings {
		k := h.InstrumentKey()
		i, ok := t.index[k]
		if !ok {
			i = len(t.Groups)
			t.index[k] = i
			t.Groups = append(t.Groups, newInstrumentGroup(k))
		}
		t.Groups[i].add(h, Derive(h, p))
	}
	return t
}

func newInstrumentGroup(k InstrumentKey) InstrumentGroup {
	g := InstrumentGroup{Key: k, AUM: math.NaN()}
	for _, m := range Measures {
		g.Risk[m] = math.NaN()
	}
	return g
}

// add accumulates a holding and its derived values into g.
func (g *InstrumentGroup) add(h Holding, d Derived) {
	g.Holdings++
	g.NAVDate = date.Max(g.NAVDate, h.HoldDate)
	g.Currency = maxNull(g.Currency, h.Currency)
	g.AUM = nanMax(g.AUM, h.AUM)

	g.Amount = nanAdd(g.Amount, h.WeightedAmount)
	g.DurationExposure = nanAdd(g.DurationExposure, d.DurationExposure)
	g.CurrencyExposure = nanAdd(g.CurrencyExposure, d.CurrencyExposure)
	g.DeltaAdjustedSpread = nanAdd(g.DeltaAdjustedSpread, h.DeltaAdjustedSpread)

	for _, m := range Measures {
		v := h.Risk[m]
		if m == Convexity {
			v = d.AbsConvexity
		}
		g.Risk[m] = nanMax(g.Risk[m], v)
	}
}

// nanAdd returns acc+v, ignoring a missing v.
func nanAdd(acc, v float64) float64 {
	if math.IsNaN(v) {
		return acc
	}
	return acc + v
}

// nanMax returns the max of acc and v, ignoring missing values.
func nanMax(acc, v float64) float64 {
	if math.IsNaN(v) {
		return acc
	}
	if math.IsNaN(acc) || v > acc {
		return v
	}
	return acc
}
