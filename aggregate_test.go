package exposure

import (
	"math"
	"testing"

	"github.com/etnz/exposure/date"
)

func TestAggregate_Grouping(t *testing.T) {
	holdings := []Holding{
		bond(day1, 1, "P1", 10, 100, 1000),
		bond(day1, 1, "P1", 10, 50, 1000), // same key
		bond(day1, 1, "P1", 11, 25, 1000),
		bond(day2, 1, "P1", 10, 10, 1000),
		bond(day1, 2, "P1", 10, 10, 1000),
	}
	nullGroup := bond(day1, 1, "P1", 10, 7, 1000)
	nullGroup.PortfolioGroup = None[int64]()
	nullInstrument := bond(day1, 1, "P1", 10, 3, 1000)
	nullInstrument.Instrument = None[int64]()
	holdings = append(holdings, nullGroup, nullInstrument, nullInstrument)

	table := Aggregate(holdings, DefaultPolicy())

	distinct := make(map[InstrumentKey]bool)
	for _, h := range holdings {
		distinct[h.InstrumentKey()] = true
	}
	if table.Len() != len(distinct) {
		t.Fatalf("Aggregate() has %d groups, want %d", table.Len(), len(distinct))
	}
	for k := range distinct {
		if _, ok := table.Lookup(k); !ok {
			t.Errorf("Aggregate() is missing key %+v", k)
		}
	}

	testCases := []struct {
		name       string
		key        InstrumentKey
		wantAmount float64
		wantCount  int
	}{
		{name: "merged", key: holdings[0].InstrumentKey(), wantAmount: 150, wantCount: 2},
		{name: "other instrument", key: holdings[2].InstrumentKey(), wantAmount: 25, wantCount: 1},
		{name: "null group", key: nullGroup.InstrumentKey(), wantAmount: 7, wantCount: 1},
		{name: "null instrument", key: nullInstrument.InstrumentKey(), wantAmount: 6, wantCount: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, ok := table.Lookup(tc.key)
			if !ok {
				t.Fatalf("Lookup(%+v) not found", tc.key)
			}
			if g.Amount != tc.wantAmount || g.Holdings != tc.wantCount {
				t.Errorf("Lookup(%+v) = amount %v holdings %d, want %v %d", tc.key, g.Amount, g.Holdings, tc.wantAmount, tc.wantCount)
			}
		})
	}

	// first seen order
	if got := table.Groups[0].Key; got != holdings[0].InstrumentKey() {
		t.Errorf("Groups[0].Key = %+v, want the first holding key", got)
	}
}

func TestAggregate_Reductions(t *testing.T) {
	a := withRisk(bond(day1, 1, "P1", 10, 100, 1000), Risk{-9, 2, 3, nan, 5})
	a.HoldDate = date.New(2025, 2, 28)
	a.Currency = None[string]()
	a.DeltaAdjustedSpread = 0.5
	a.WeightedQuantityDuration = 300
	b := withRisk(bond(day1, 1, "P1", 10, nan, nan), Risk{4, 7, -1, nan, 1})
	b.Currency = Some("EUR")
	b.DeltaAdjustedSpread = nan

	g := Aggregate([]Holding{a, b}, DefaultPolicy()).Groups[0]

	if g.NAVDate != day1 {
		t.Errorf("NAVDate = %v, want %v", g.NAVDate, day1)
	}
	if g.Currency != Some("EUR") {
		t.Errorf("Currency = %v, want EUR", g.Currency)
	}
	if g.AUM != 1000 {
		t.Errorf("AUM = %v, want 1000 (missing ignored)", g.AUM)
	}
	if g.Amount != 100 {
		t.Errorf("Amount = %v, want 100 (missing ignored)", g.Amount)
	}
	// a: |300|/|100|*0.5 = 1.5, b: NaN spread gives a NaN exposure, ignored.
	if g.DurationExposure != 1.5 {
		t.Errorf("DurationExposure = %v, want 1.5", g.DurationExposure)
	}
	if g.DeltaAdjustedSpread != 0.5 {
		t.Errorf("DeltaAdjustedSpread = %v, want 0.5", g.DeltaAdjustedSpread)
	}
	want := Risk{9, 7, 3, nan, 5}
	for _, m := range Measures {
		if got := g.Risk[m]; got != want[m] && !(math.IsNaN(got) && math.IsNaN(want[m])) {
			t.Errorf("Risk[%v] = %v, want %v", m, got, want[m])
		}
	}
}

func TestAggregate_SumConservation(t *testing.T) {
	holdings := []Holding{
		bond(day1, 1, "P1", 10, 100, 1000),
		bond(day1, 1, "P1", 11, 30, 1000),
		bond(day1, 1, "P1", 10, 20, 1000),
		bond(day1, 2, "P2", 10, 60, 500),
	}
	holdings[1].DeltaAdjustedSpread = 0.1
	holdings[1].WeightedQuantityDuration = 20
	holdings[3].InstrumentType = "Forex"
	holdings[3].ISIN = Some("XS1")
	holdings[3].Maturity = 1
	holdings[3].WeightedQuantityForex = 10
	holdings[3].CrossCurrencyHoldQuantity = 4
	holdings[3].FXRate = 2

	type sums struct{ dur, cur float64 }
	want := make(map[PortfolioKey]sums)
	for _, h := range holdings {
		d := Derive(h, DefaultPolicy())
		k := h.InstrumentKey().PortfolioKey()
		s := want[k]
		want[k] = sums{s.dur + d.DurationExposure, s.cur + d.CurrencyExposure}
	}

	got := make(map[PortfolioKey]sums)
	for _, g := range Aggregate(holdings, DefaultPolicy()).Groups {
		k := g.Key.PortfolioKey()
		s := got[k]
		got[k] = sums{s.dur + g.DurationExposure, s.cur + g.CurrencyExposure}
	}

	for k, w := range want {
		g := got[k]
		if math.Abs(g.dur-w.dur) > 1e-9 || math.Abs(g.cur-w.cur) > 1e-9 {
			t.Errorf("portfolio %+v: aggregated sums %+v, want %+v", k, g, w)
		}
	}
}
