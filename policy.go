package exposure

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the constants that select which holdings get their currency
// exposure recomputed from the cross currency quantity.
type Policy struct {
	// ForexType is the instrument type of currency positions.
	ForexType string `yaml:"forex_type"`
	// ForwardPrefix marks forward contracts by the start of their ISIN code.
	ForwardPrefix string `yaml:"forward_prefix"`
	// MaxSpotMaturity is the exclusive bound, in months, of short dated positions.
	MaxSpotMaturity float64 `yaml:"max_spot_maturity"`
}

// DefaultPolicy returns the policy used by the reporting layer.
func DefaultPolicy() Policy {
	return Policy{
		ForexType:       "Forex",
		ForwardPrefix:   "FWD",
		MaxSpotMaturity: 12,
	}
}

// DecodePolicy reads a YAML policy from r. Fields absent from the document keep their default value.
func DecodePolicy(r io.Reader) (Policy, error) {
	p := DefaultPolicy()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicy reads a YAML policy file.
func LoadPolicy(filename string) (Policy, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Policy{}, fmt.Errorf("cannot open policy %q: %w", filename, err)
	}
	defer f.Close()
	p, err := DecodePolicy(f)
	if err != nil {
		return Policy{}, fmt.Errorf("format error in policy %q: %w", filename, err)
	}
	return p, nil
}
