package exposure

import (
	"encoding/json"
	"fmt"
)

// Null is a value that may be missing.
//
// Null is comparable whenever T is, so a key made of Null fields is a valid
// map key: two missing values are equal and form their own group.
type Null[T comparable] struct {
	V     T
	Valid bool
}

// Some returns a present value.
func Some[T comparable](v T) Null[T] { return Null[T]{V: v, Valid: true} }

// None returns a missing value.
func None[T comparable]() Null[T] { return Null[T]{} }

// Or returns the value, or def when missing.
func (n Null[T]) Or(def T) T {
	if !n.Valid {
		return def
	}
	return n.V
}

// String returns the value formatted with %v, or "" when missing.
func (n Null[T]) String() string {
	if !n.Valid {
		return ""
	}
	return fmt.Sprint(n.V)
}

// Any returns the value, or nil when missing.
func (n Null[T]) Any() any {
	if !n.Valid {
		return nil
	}
	return n.V
}

func (n Null[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.V)
}

func (n *Null[T]) UnmarshalJSON(data []byte) error {
	var v *T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*n = Null[T]{}
		return nil
	}
	*n = Some(*v)
	return nil
}

// maxNull returns the greatest of two nullable strings, ignoring missing ones.
func maxNull(a, b Null[string]) Null[string] {
	switch {
	case !a.Valid:
		return b
	case !b.Valid:
		return a
	case b.V > a.V:
		return b
	}
	return a
}
