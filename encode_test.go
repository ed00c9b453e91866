package exposure

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

// sampleRows is a helper for test returning a regular row and a degenerate one.
func sampleRows() []Row {
	r := Row{
		Key:              InstrumentKey{Date: day1, PortfolioGroup: Some[int64](12), Portfolio: Some("P1"), AladdinType: Some("BND"), Instrument: Some[int64](42)},
		NAVDate:          day1,
		Currency:         Some("EUR"),
		InstrumentWeight: 0.25,
		Contrib:          Risk{1, 2, 3, 4, 5},
		ContribWeight:    Risk{1, 1, 1, 1, 1},
	}
	degenerate := Row{
		Key:                    InstrumentKey{Date: day1},
		InstrumentWeight:       inf,
		DurationExposureWeight: -inf,
		Contrib:                Risk{nan},
	}
	return []Row{r, degenerate}
}

func TestRow_Values(t *testing.T) {
	for _, r := range sampleRows() {
		if got := len(r.Values()); got != len(Columns) {
			t.Errorf("len(Values()) = %d, want %d", got, len(Columns))
		}
	}
}

func TestEncodeRowsCSV(t *testing.T) {
	var b bytes.Buffer
	if err := EncodeRowsCSV(&b, sampleRows()); err != nil {
		t.Fatalf("EncodeRowsCSV() failed: %v", err)
	}
	records, err := csv.NewReader(&b).ReadAll()
	if err != nil {
		t.Fatalf("cannot read back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("EncodeRowsCSV() wrote %d records, want 3", len(records))
	}
	if diff := cmp.Diff(Columns, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	col := func(rec []string, name string) string {
		for i, c := range Columns {
			if c == name {
				return rec[i]
			}
		}
		t.Fatalf("no column %q", name)
		return ""
	}
	testCases := []struct {
		record int
		column string
		want   string
	}{
		{1, "date", "2025-03-03"},
		{1, "portfolio_group_fkey", "12"},
		{1, "portfolio_group_fkey_text", "12"},
		{1, "instrument_weight", "0.25"},
		{1, "spread_duration_contrib", "5"},
		{2, "portfolio_group_fkey", ""},
		{2, "portfolio_group_fkey_text", ""},
		{2, "nav_date", ""},
		{2, "instrument_weight", "+Inf"},
		{2, "duration_exposure_weight", "-Inf"},
		{2, "convexity_contrib", "NaN"},
	}
	for _, tc := range testCases {
		if got := col(records[tc.record], tc.column); got != tc.want {
			t.Errorf("record %d %s = %q, want %q", tc.record, tc.column, got, tc.want)
		}
	}
}

func TestEncodeRowsJSONL(t *testing.T) {
	var b bytes.Buffer
	if err := EncodeRowsJSONL(&b, sampleRows()); err != nil {
		t.Fatalf("EncodeRowsJSONL() failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("EncodeRowsJSONL() wrote %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], `{"date":"2025-03-03","portfolio_group_fkey":12,"portfolio_gps_code":"P1",`) {
		t.Errorf("line 0 = %s, want fields in column order", lines[0])
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &obj); err != nil {
		t.Fatalf("line 1 is not valid json: %v", err)
	}
	want := map[string]any{"portfolio_group_fkey": nil, "instrument_weight": "+Inf", "convexity_contrib": "NaN", "nav_date": nil}
	for k, v := range want {
		if obj[k] != v {
			t.Errorf("line 1 %s = %v, want %v", k, obj[k], v)
		}
	}
}

func TestEncodeRowsMsgpack(t *testing.T) {
	var b bytes.Buffer
	if err := EncodeRowsMsgpack(&b, sampleRows()); err != nil {
		t.Fatalf("EncodeRowsMsgpack() failed: %v", err)
	}
	var got []map[string]any
	if err := msgpack.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("msgpack.Unmarshal() failed: %v", err)
	}
	if len(got) != 2 || len(got[0]) != len(Columns) {
		t.Fatalf("EncodeRowsMsgpack() = %v, want 2 maps of %d columns", got, len(Columns))
	}
	if got[0]["date"] != "2025-03-03" || got[0]["portfolio_gps_code"] != "P1" || got[0]["instrument_weight"] != 0.25 {
		t.Errorf("row 0 = %v", got[0])
	}
	if got[1]["date"] != "2025-03-03" || got[1]["nav_date"] != nil || got[1]["instrument_weight"] != inf {
		t.Errorf("row 1 = %v", got[1])
	}
}

func TestEncodeRows_Empty(t *testing.T) {
	var b bytes.Buffer
	if err := EncodeRows(&b, CSV, []Row{}); err != nil {
		t.Fatalf("EncodeRows() failed: %v", err)
	}
	if want := strings.Join(Columns, ",") + "\n"; b.String() != want {
		t.Errorf("EncodeRows() = %q, want the header only %q", b.String(), want)
	}
}
