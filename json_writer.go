package exposure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a new key-value pair to the JSON object. The value is marshaled
// to JSON using `json.Marshal`, except for floats, see Float.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	if f, ok := value.(float64); ok {
		return w.Float(key, f)
	}

	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	w.key(key)
	w.Write(valBytes)
	w.WriteString(",")
	return w
}

// Float adds a number to the JSON object. JSON has no infinities nor NaN,
// they are written as the strings "+Inf", "-Inf" and "NaN".
func (w *jsonObjectWriter) Float(key string, f float64) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	w.key(key)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		w.WriteString(strconv.Quote(strconv.FormatFloat(f, 'g', -1, 64)))
	} else {
		w.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	w.WriteString(",")
	return w
}

func (w *jsonObjectWriter) key(key string) {
	w.WriteString(strconv.Quote(key))
	w.WriteString(":")
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')
	return final, nil
}

// MarshalJSON writes the row as a JSON object with the fields in Columns order.
func (r Row) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for i, v := range r.Values() {
		w.Append(Columns[i], v)
	}
	return w.MarshalJSON()
}
