package exposure

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/etnz/exposure/date"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned for a format name or file extension that is not supported.
var ErrUnknownFormat = errors.New("unknown format")

// Format is a tabular encoding.
type Format string

const (
	CSV     Format = "csv"
	JSONL   Format = "jsonl"
	Msgpack Format = "msgpack" // output only
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case CSV, JSONL, Msgpack:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// FormatOf returns the Format of a file from its extension.
func FormatOf(filename string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return CSV, nil
	case ".jsonl", ".ndjson":
		return JSONL, nil
	case ".msgpack", ".mpk":
		return Msgpack, nil
	default:
		return "", fmt.Errorf("%w for file %q", ErrUnknownFormat, filename)
	}
}

// DecodeHoldings reads holdings encoded in f.
func DecodeHoldings(r io.Reader, f Format) ([]Holding, error) {
	switch f {
	case CSV:
		return DecodeHoldingsCSV(r)
	case JSONL:
		return DecodeHoldingsJSONL(r)
	}
	return nil, fmt.Errorf("%w %q for holdings", ErrUnknownFormat, f)
}

// EncodeRows writes rows encoded in f.
func EncodeRows(w io.Writer, f Format, rows []Row) error {
	switch f {
	case CSV:
		return EncodeRowsCSV(w, rows)
	case JSONL:
		return EncodeRowsJSONL(w, rows)
	case Msgpack:
		return EncodeRowsMsgpack(w, rows)
	}
	return fmt.Errorf("%w %q for rows", ErrUnknownFormat, f)
}

// EncodeRowsCSV writes a header with Columns then one record per row.
// Missing values are empty cells.
func EncodeRowsCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range rows {
		rec, err := r.Record()
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeRowsJSONL writes one JSON object per line, see Row.MarshalJSON.
func EncodeRowsJSONL(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	for i, r := range rows {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		bw.Write(data)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// EncodeRowsMsgpack writes an array with one map per row, keyed by column name.
// Dates are strings, missing values are nil.
func EncodeRowsMsgpack(w io.Writer, rows []Row) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeArrayLen(len(rows)); err != nil {
		return err
	}
	for i, r := range rows {
		values := r.Values()
		if err := enc.EncodeMapLen(len(values)); err != nil {
			return err
		}
		for c, v := range values {
			if d, ok := v.(date.Date); ok {
				v = nil
				if !d.IsZero() {
					v = d.String()
				}
			}
			if err := enc.EncodeString(Columns[c]); err != nil {
				return err
			}
			if err := enc.Encode(v); err != nil {
				return fmt.Errorf("row %d column %q: %w", i, Columns[c], err)
			}
		}
	}
	return nil
}
