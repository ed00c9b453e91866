package exposure

import (
	"math"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("ordered fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("z", 1)
		w.Append("a", "hello")
		w.Append("m", nil)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"z":1,"a":"hello","m":null}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("non finite floats", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0.25)
		w.Append("b", math.Inf(1))
		w.Append("c", math.Inf(-1))
		w.Append("d", math.NaN())
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"a":0.25,"b":"+Inf","c":"-Inf","d":"NaN"}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("ch", make(chan int))
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("MarshalJSON() succeeded, want an error for a channel value")
		}
	})
}
