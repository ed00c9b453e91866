package exposure

import (
	"math"
	"strings"
)

// Derived holds the values computed from a single holding before aggregation.
type Derived struct {
	DurationExposure float64
	CurrencyExposure float64
	AbsConvexity     float64
}

// Derive computes the duration and currency exposures of h.
//
// Both default to the weighted amount. The duration exposure is replaced by
// |weighted quantity duration| / |hold quantity| * delta adjusted spread when
// both the spread and the hold quantity are non zero. The currency exposure of
// short dated, non forward forex positions is re-expressed through the cross
// currency quantity and the portfolio rate, and is 0 when that quantity is 0.
func Derive(h Holding, p Policy) Derived {
	d := Derived{
		DurationExposure: h.WeightedAmount,
		CurrencyExposure: h.WeightedAmount,
		AbsConvexity:     math.Abs(h.Risk[Convexity]),
	}

	// NaN compares different from 0: a missing spread or quantity yields a NaN exposure.
	if h.DeltaAdjustedSpread != 0 && h.HoldQuantity != 0 {
		d.DurationExposure = math.Abs(h.WeightedQuantityDuration) / math.Abs(h.HoldQuantity) * h.DeltaAdjustedSpread
	}

	if p.isSpotForex(h) {
		d.CurrencyExposure = 0
		if h.CrossCurrencyHoldQuantity != 0 {
			d.CurrencyExposure = h.WeightedQuantityForex / h.CrossCurrencyHoldQuantity * h.FXRate
		}
	}
	return d
}

// isSpotForex reports whether h is a short dated forex position that is not a forward.
func (p Policy) isSpotForex(h Holding) bool {
	return h.InstrumentType == p.ForexType &&
		h.ISIN.Valid &&
		!strings.HasPrefix(h.ISIN.V, p.ForwardPrefix) &&
		h.Maturity < p.MaxSpotMaturity // false for a missing maturity
}
