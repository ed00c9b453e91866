package exposure

import (
	"math"
	"time"

	"github.com/etnz/exposure/date"
)

var (
	day1 = date.New(2025, time.March, 3)
	day2 = date.New(2025, time.March, 4)
	nan  = math.NaN()
	inf  = math.Inf(1)
)

// bond is a helper for test to create a holding with no override: zero spread,
// its exposures are its weighted amount.
func bond(on date.Date, group int64, portfolio string, instrument int64, amount, aum float64) Holding {
	h := newHolding()
	h.Date = on
	h.HoldDate = on
	h.PortfolioGroup = Some(group)
	h.Portfolio = Some(portfolio)
	h.Currency = Some("EUR")
	h.AUM = aum
	h.FXRate = 1
	h.InstrumentType = "Bond"
	h.Instrument = Some(instrument)
	h.AladdinType = Some("BND")
	h.HoldQuantity = 100
	h.WeightedAmount = amount
	h.DeltaAdjustedSpread = 0
	h.Risk = Risk{1, 2, 3, 4, 5}
	return h
}

// withRisk returns h with its risk measures replaced.
func withRisk(h Holding, r Risk) Holding {
	h.Risk = r
	return h
}
