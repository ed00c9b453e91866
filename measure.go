package exposure

import "fmt"

// Measure identifies one of the risk measures carried by a holding.
type Measure int

const (
	Convexity Measure = iota
	ModifiedDuration
	MCDuration
	EffectiveDuration
	SpreadDuration

	numMeasures = iota
)

// Measures lists every risk measure in output column order.
var Measures = [numMeasures]Measure{Convexity, ModifiedDuration, MCDuration, EffectiveDuration, SpreadDuration}

// Risk holds one value per Measure.
type Risk [numMeasures]float64

var measureNames = [numMeasures]string{"convexity", "modified_duration", "mc_duration", "effective_duration", "spread_duration"}

// String returns the snake_case name of the measure, as used in column names.
func (m Measure) String() string {
	if m < 0 || int(m) >= numMeasures {
		return fmt.Sprintf("Measure(%d)", int(m))
	}
	return measureNames[m]
}

// ParseMeasure returns the Measure named s.
func ParseMeasure(s string) (Measure, error) {
	for _, m := range Measures {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown risk measure %q", s)
}
