// Package date implements a calendar day with no time of day, used as the
// reporting date and the NAV date of holding rows.
//
// The zero Date is a valid value meaning "no date": it is how a missing date
// travels through the pipeline, it sorts before every real date and it is
// rendered as an empty string.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
//
// Date is comparable and can be used as part of a map key.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// IsZero reports whether d is the missing date.
func (d Date) IsZero() bool { return d == Date{} }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// Before reports whether the day d is before x. The missing date is before any other date.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1 when d is before, equal or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.IsZero() && x.IsZero():
		return 0
	case d.IsZero():
		return -1
	case x.IsZero():
		return 1
	}
	return d.time().Compare(x.time())
}

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// Max returns the latest of d and x.
func Max(d, x Date) Date {
	if x.After(d) {
		return x
	}
	return d
}

// String format the date in its standard format, the missing date is "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
// An empty string is the missing date.
func Parse(str string) (Date, error) {
	if str == "" {
		return Date{}, nil
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON reads a date from a json string, null being the missing date.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str *string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == nil {
		*d = Date{}
		return nil
	}
	v, err := Parse(*str)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON writes the date as a json string, or null when missing.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
