package exposure

import "math"

// Weigh computes, for every instrument group, the weights relative to the
// portfolio AUM and the raw contribution of each risk measure.
//
// All contributions are driven by the duration exposure weight. The
// contribution weights are left to zero, see Normalize.
func Weigh(t *InstrumentTable) []Row {
	rows := make([]Row, 0, t.Len())
	for _, g := range t.Groups {
		r := Row{
			Key:                    g.Key,
			NAVDate:                g.NAVDate,
			Currency:               g.Currency,
			InstrumentWeight:       ratio(g.Amount, g.AUM),
			DurationExposure:       g.DurationExposure,
			CurrencyExposure:       g.CurrencyExposure,
			DurationExposureWeight: ratio(g.DurationExposure, g.AUM),
			CurrencyExposureWeight: ratio(g.CurrencyExposure, g.AUM),
			DeltaAdjustedSpread:    g.DeltaAdjustedSpread,
		}
		for _, m := range Measures {
			r.Contrib[m] = r.DurationExposureWeight * g.Risk[m]
		}
		rows = append(rows, r)
	}
	return rows
}

// ratio returns a/b, or 0 when the quotient is not a number (0/0 or a missing
// operand). A non zero a divided by a zero b is left infinite.
func ratio(a, b float64) float64 {
	q := a / b
	if math.IsNaN(q) {
		return 0
	}
	return q
}
