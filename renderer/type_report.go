package renderer

import (
	"math"

	"github.com/etnz/exposure"
	"github.com/etnz/exposure/date"
)

// Report is the markdown view of the output rows, one section per portfolio partition.
type Report struct {
	Portfolios []Portfolio `json:"portfolios"`
	Anomalies  []string    `json:"anomalies,omitempty"`
}

// Portfolio is a portfolio group on a date.
type Portfolio struct {
	Date             date.Date    `json:"date"`
	Group            string       `json:"group"`
	Code             string       `json:"code"`
	DurationExposure Amount       `json:"durationExposure"` // sum over instruments
	CurrencyExposure Amount       `json:"currencyExposure"` // sum over instruments
	Instruments      []Instrument `json:"instruments"`
}

// Instrument is one output row.
type Instrument struct {
	ID                     string    `json:"id"`
	Type                   string    `json:"type"`
	NAVDate                date.Date `json:"navDate"`
	Weight                 Weight    `json:"weight"`
	DurationExposure       Amount    `json:"durationExposure"`
	CurrencyExposure       Amount    `json:"currencyExposure"`
	DurationExposureWeight Weight    `json:"durationExposureWeight"`
	CurrencyExposureWeight Weight    `json:"currencyExposureWeight"`
	ContribWeights         []Weight  `json:"contribWeights"` // in exposure.Measures order
}

// NewReport groups rows by portfolio partition, in the order the partitions first appear,
// and lists the anomalies found by exposure.Inspect.
func NewReport(rows []exposure.Row) *Report {
	r := &Report{Portfolios: make([]Portfolio, 0)}
	index := make(map[exposure.PortfolioKey]int)
	var mixed []bool // the partition rows disagree on the currency
	for _, row := range rows {
		k := row.PortfolioKey()
		cur := row.Currency.String()
		i, ok := index[k]
		if !ok {
			i = len(r.Portfolios)
			index[k] = i
			r.Portfolios = append(r.Portfolios, Portfolio{
				Date:             k.Date,
				Group:            k.PortfolioGroup.String(),
				Code:             k.Portfolio.String(),
				DurationExposure: Amount{Currency: cur},
				CurrencyExposure: Amount{Currency: cur},
			})
			mixed = append(mixed, false)
		}
		p := &r.Portfolios[i]
		switch {
		case mixed[i] || cur == "" || cur == p.DurationExposure.Currency:
		case p.DurationExposure.Currency == "":
			p.DurationExposure.Currency, p.CurrencyExposure.Currency = cur, cur
		default:
			// subtotals of several currencies are plain numbers
			mixed[i] = true
			p.DurationExposure.Currency, p.CurrencyExposure.Currency = "", ""
		}
		p.DurationExposure.Value = addKnown(p.DurationExposure.Value, row.DurationExposure)
		p.CurrencyExposure.Value = addKnown(p.CurrencyExposure.Value, row.CurrencyExposure)

		in := Instrument{
			ID:                     row.Key.Instrument.String(),
			Type:                   row.Key.AladdinType.String(),
			NAVDate:                row.NAVDate,
			Weight:                 Weight(row.InstrumentWeight),
			DurationExposure:       Amount{row.DurationExposure, cur},
			CurrencyExposure:       Amount{row.CurrencyExposure, cur},
			DurationExposureWeight: Weight(row.DurationExposureWeight),
			CurrencyExposureWeight: Weight(row.CurrencyExposureWeight),
		}
		for _, m := range exposure.Measures {
			in.ContribWeights = append(in.ContribWeights, Weight(row.ContribWeight[m]))
		}
		p.Instruments = append(p.Instruments, in)
	}

	for _, a := range exposure.Inspect(rows) {
		r.Anomalies = append(r.Anomalies, a.String())
	}
	return r
}

// addKnown adds v to acc unless v is missing, like the pipeline sums.
func addKnown(acc, v float64) float64 {
	if math.IsNaN(v) {
		return acc
	}
	return acc + v
}
