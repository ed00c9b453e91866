package exposure

import "github.com/etnz/exposure/date"

// Holding is one input row: the position of an instrument in a portfolio on a date.
//
// Missing numeric values are NaN, missing keys and codes are invalid Null values.
// A holding is not unique by instrument alone, the same instrument appears once
// per portfolio and per date.
type Holding struct {
	Date           date.Date     // Reporting date.
	HoldDate       date.Date     // Date of the position, reported as the NAV date.
	PortfolioGroup Null[int64]   // Portfolio group foreign key.
	Portfolio      Null[string]  // Portfolio GPS code.
	Currency       Null[string]  // Portfolio ISO currency code.
	AUM            float64       // Portfolio assets under management.
	FXRate         float64       // Portfolio exchange rate.
	InstrumentType string        // Instrument type, "Forex" enables the currency override.
	ISIN           Null[string]  // Instrument ISIN code.
	Instrument     Null[int64]   // Instrument id.
	AladdinType    Null[string]  // Instrument type code in the aladdin nomenclature.
	Maturity       float64       // Instrument maturity length, in months.

	HoldQuantity              float64
	WeightedAmount            float64
	WeightedQuantityDuration  float64 // duration adjusted
	WeightedQuantityForex     float64 // forex adjusted
	CrossCurrencyHoldQuantity float64
	DeltaAdjustedSpread       float64

	Risk Risk // Risk measures, indexed by Measure.
}

// InstrumentKey is the grain of the output: one row per key.
type InstrumentKey struct {
	Date           date.Date
	PortfolioGroup Null[int64]
	Portfolio      Null[string]
	AladdinType    Null[string]
	Instrument     Null[int64]
}

// PortfolioKey is the partition within which contributions are normalized.
type PortfolioKey struct {
	Date           date.Date
	PortfolioGroup Null[int64]
	Portfolio      Null[string]
}

// InstrumentKey returns the grouping key of h.
func (h Holding) InstrumentKey() InstrumentKey {
	return InstrumentKey{
		Date:           h.Date,
		PortfolioGroup: h.PortfolioGroup,
		Portfolio:      h.Portfolio,
		AladdinType:    h.AladdinType,
		Instrument:     h.Instrument,
	}
}

// PortfolioKey returns the portfolio partition k belongs to.
func (k InstrumentKey) PortfolioKey() PortfolioKey {
	return PortfolioKey{Date: k.Date, PortfolioGroup: k.PortfolioGroup, Portfolio: k.Portfolio}
}
