package exposure

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/etnz/exposure/date"
	"github.com/shopspring/decimal"
)

// ErrUnknownColumn is returned when an input names a column that is not a Holding column.
var ErrUnknownColumn = errors.New("unknown column")

// holdingColumn binds an input column name to the Holding field it fills.
type holdingColumn struct {
	name string
	set  func(h *Holding, cell string) error
}

var holdingColumns = []holdingColumn{
	dateColumn("date", func(h *Holding) *date.Date { return &h.Date }),
	dateColumn("hold_date", func(h *Holding) *date.Date { return &h.HoldDate }),
	intColumn("portfolio_group_fkey", func(h *Holding) *Null[int64] { return &h.PortfolioGroup }),
	textColumn("portfolio_gps_code", func(h *Holding) *Null[string] { return &h.Portfolio }),
	textColumn("portfolio_currency_iso_code", func(h *Holding) *Null[string] { return &h.Currency }),
	floatColumn("portfolio_aum", func(h *Holding) *float64 { return &h.AUM }),
	floatColumn("portfolio_fx_rate", func(h *Holding) *float64 { return &h.FXRate }),
	{"instrument_type", func(h *Holding, cell string) error { h.InstrumentType = textCell(cell).Or(""); return nil }},
	textColumn("instrument_isin_code", func(h *Holding) *Null[string] { return &h.ISIN }),
	intColumn("instrument_id", func(h *Holding) *Null[int64] { return &h.Instrument }),
	textColumn("instrument_type_aladdin_code", func(h *Holding) *Null[string] { return &h.AladdinType }),
	floatColumn("instrument_maturity_length", func(h *Holding) *float64 { return &h.Maturity }),
	floatColumn("hold_quantity", func(h *Holding) *float64 { return &h.HoldQuantity }),
	floatColumn("weighted_amount", func(h *Holding) *float64 { return &h.WeightedAmount }),
	floatColumn("weighted_quantity_duration", func(h *Holding) *float64 { return &h.WeightedQuantityDuration }),
	floatColumn("weighted_quantity_forex", func(h *Holding) *float64 { return &h.WeightedQuantityForex }),
	floatColumn("hold_cross_currency_quantity", func(h *Holding) *float64 { return &h.CrossCurrencyHoldQuantity }),
	floatColumn("delta_adjusted_spread", func(h *Holding) *float64 { return &h.DeltaAdjustedSpread }),
	riskColumn(Convexity),
	riskColumn(ModifiedDuration),
	riskColumn(MCDuration),
	riskColumn(EffectiveDuration),
	riskColumn(SpreadDuration),
}

// holdingColumnIndex maps a column name to its position in holdingColumns.
var holdingColumnIndex = func() map[string]int {
	m := make(map[string]int, len(holdingColumns))
	for i, c := range holdingColumns {
		m[c.name] = i
	}
	return m
}()

// HoldingColumns returns the names of the input columns.
func HoldingColumns() []string {
	names := make([]string, len(holdingColumns))
	for i, c := range holdingColumns {
		names[i] = c.name
	}
	return names
}

func dateColumn(name string, field func(*Holding) *date.Date) holdingColumn {
	return holdingColumn{name, func(h *Holding, cell string) (err error) {
		cell = strings.TrimSpace(cell)
		if isNullCell(cell) {
			*field(h) = date.Date{}
			return nil
		}
		*field(h), err = date.Parse(cell)
		return err
	}}
}

func textColumn(name string, field func(*Holding) *Null[string]) holdingColumn {
	return holdingColumn{name, func(h *Holding, cell string) error {
		*field(h) = textCell(cell)
		return nil
	}}
}

// textCell returns the text of a cell, the null markers are missing.
func textCell(cell string) Null[string] {
	if isNullCell(strings.TrimSpace(cell)) {
		return None[string]()
	}
	return Some(cell)
}

func intColumn(name string, field func(*Holding) *Null[int64]) holdingColumn {
	return holdingColumn{name, func(h *Holding, cell string) error {
		v, err := parseInt(cell)
		*field(h) = v
		return err
	}}
}

func floatColumn(name string, field func(*Holding) *float64) holdingColumn {
	return holdingColumn{name, func(h *Holding, cell string) (err error) {
		*field(h), err = parseFloat(cell)
		return err
	}}
}

func riskColumn(m Measure) holdingColumn {
	return floatColumn(m.String(), func(h *Holding) *float64 { return &h.Risk[m] })
}

// isNullCell reports whether a cell stands for a missing value.
func isNullCell(s string) bool {
	switch s {
	case "", "NaN", "nan", "null", "NULL":
		return true
	}
	return false
}

// parseFloat parses a number, failing on anything that is neither a number nor a null.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if isNullCell(s) {
		return math.NaN(), nil
	}
	switch s {
	case "+Inf", "Inf", "inf":
		return math.Inf(1), nil
	case "-Inf", "-inf":
		return math.Inf(-1), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// parseInt parses an integer key. Integral decimals like "12.0" are accepted.
func parseInt(s string) (Null[int64], error) {
	s = strings.TrimSpace(s)
	if isNullCell(s) {
		return None[int64](), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return None[int64](), fmt.Errorf("invalid integer %q: %w", s, err)
	}
	if !d.IsInteger() {
		return None[int64](), fmt.Errorf("invalid integer %q: has a fractional part", s)
	}
	if !d.BigInt().IsInt64() {
		return None[int64](), fmt.Errorf("invalid integer %q: does not fit in int64", s)
	}
	return Some(d.IntPart()), nil
}

// newHolding returns a holding where every number is missing.
func newHolding() Holding {
	nan := math.NaN()
	h := Holding{
		AUM: nan, FXRate: nan, Maturity: nan,
		HoldQuantity: nan, WeightedAmount: nan,
		WeightedQuantityDuration: nan, WeightedQuantityForex: nan,
		CrossCurrencyHoldQuantity: nan, DeltaAdjustedSpread: nan,
	}
	for _, m := range Measures {
		h.Risk[m] = nan
	}
	return h
}

// DecodeHoldingsCSV reads holdings from a CSV stream whose first record names the columns.
//
// Columns can come in any order, absent columns are missing values and an
// absent hold_date defaults to the date. An unknown column, or a cell that
// cannot be converted to its column type, is an error.
func DecodeHoldingsCSV(r io.Reader) ([]Holding, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return []Holding{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff") // byte order mark
	}

	columns := make([]holdingColumn, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		j, ok := holdingColumnIndex[name]
		if !ok {
			return nil, fmt.Errorf("csv header: %w %q", ErrUnknownColumn, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("csv header: duplicate column %q", name)
		}
		seen[name] = true
		columns[i] = holdingColumns[j]
	}

	holdings := []Holding{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		h := newHolding()
		for i, cell := range rec {
			if err := columns[i].set(&h, cell); err != nil {
				return nil, fmt.Errorf("format error on line %d column %q: %w", line, columns[i].name, err)
			}
		}
		if !seen["hold_date"] {
			h.HoldDate = h.Date
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// DecodeHoldingsJSONL reads holdings from a stream of JSON objects, one per
// line, keyed by column name. Numbers can be given as JSON numbers or strings.
func DecodeHoldingsJSONL(r io.Reader) ([]Holding, error) {
	holdings := []Holding{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(lineBytes, &obj); err != nil {
			return nil, fmt.Errorf("parse error on line %d: not a correct json: %w", line, err)
		}
		h := newHolding()
		for name, raw := range obj {
			j, ok := holdingColumnIndex[name]
			if !ok {
				return nil, fmt.Errorf("parse error on line %d: %w %q", line, ErrUnknownColumn, name)
			}
			cell, err := rawCell(raw)
			if err == nil {
				err = holdingColumns[j].set(&h, cell)
			}
			if err != nil {
				return nil, fmt.Errorf("format error on line %d property %q: %w", line, name, err)
			}
		}
		if _, ok := obj["hold_date"]; !ok {
			h.HoldDate = h.Date
		}
		holdings = append(holdings, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read jsonl: %w", err)
	}
	return holdings, nil
}

// rawCell returns the text of a JSON scalar: strings unquoted, null as "".
func rawCell(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		return "", nil
	case len(raw) > 0 && raw[0] == '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case len(raw) > 0 && (raw[0] == '{' || raw[0] == '['):
		return "", fmt.Errorf("want a scalar got %s", raw)
	}
	return string(raw), nil
}
