package exposure

import (
	"fmt"
	"strconv"

	"github.com/etnz/exposure/date"
)

// Row is an output row: one instrument of a portfolio group on a date.
type Row struct {
	Key InstrumentKey

	NAVDate  date.Date
	Currency Null[string]

	InstrumentWeight       float64
	DurationExposure       float64 // in portfolio currency
	CurrencyExposure       float64 // in portfolio currency
	DurationExposureWeight float64
	CurrencyExposureWeight float64

	Contrib       Risk // raw contributions
	ContribWeight Risk // contributions relative to the portfolio total

	DeltaAdjustedSpread float64
}

// Columns are the names of the output columns, in order.
var Columns = []string{
	"date",
	"portfolio_group_fkey",
	"portfolio_gps_code",
	"instrument_type_aladdin_code",
	"instrument_id",
	"nav_date",
	"currency_iso_code",
	"instrument_weight",
	"duration_exposure",
	"currency_exposure",
	"duration_exposure_weight",
	"currency_exposure_weight",
	"convexity_contrib",
	"modified_duration_contrib",
	"mc_duration_contrib",
	"effective_duration_contrib",
	"spread_duration_contrib",
	"convexity_contrib_weight",
	"modified_duration_contrib_weight",
	"mc_duration_contrib_weight",
	"effective_duration_contrib_weight",
	"spread_duration_contrib_weight",
	"delta_adjusted_spread_sum",
	"portfolio_group_fkey_text",
}

// PortfolioKey returns the partition r is normalized within.
func (r Row) PortfolioKey() PortfolioKey { return r.Key.PortfolioKey() }

// Values returns the row values in Columns order.
//
// Missing keys are nil, dates are date.Date, numbers are float64.
func (r Row) Values() []any {
	v := make([]any, 0, len(Columns))
	v = append(v,
		r.Key.Date,
		r.Key.PortfolioGroup.Any(),
		r.Key.Portfolio.Any(),
		r.Key.AladdinType.Any(),
		r.Key.Instrument.Any(),
		r.NAVDate,
		r.Currency.Any(),
		r.InstrumentWeight,
		r.DurationExposure,
		r.CurrencyExposure,
		r.DurationExposureWeight,
		r.CurrencyExposureWeight,
	)
	for _, m := range Measures {
		v = append(v, r.Contrib[m])
	}
	for _, m := range Measures {
		v = append(v, r.ContribWeight[m])
	}
	return append(v, r.DeltaAdjustedSpread, r.Key.PortfolioGroup.String())
}

// Record returns the row values as text, in Columns order.
//
// It fails when a value has no text representation.
func (r Row) Record() ([]string, error) {
	values := r.Values()
	rec := make([]string, len(values))
	for i, v := range values {
		s, err := formatValue(v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", Columns[i], err)
		}
		rec[i] = s
	}
	return rec, nil
}

// formatValue converts a value of Values to text.
func formatValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case date.Date:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil // "+Inf", "-Inf" and "NaN" included
	default:
		return "", fmt.Errorf("cannot convert %T to text", v)
	}
}
