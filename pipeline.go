package exposure

import (
	"math"

	"github.com/rs/zerolog"
)

// Pipeline computes the output rows from the holdings.
//
// A Pipeline holds no state between runs, the zero value is not ready to
// use: call NewPipeline.
type Pipeline struct {
	policy Policy
	log    zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPolicy replaces the default policy.
func WithPolicy(p Policy) Option { return func(pl *Pipeline) { pl.policy = p } }

// WithLogger sets the logger, nothing is logged by default.
func WithLogger(l zerolog.Logger) Option { return func(pl *Pipeline) { pl.log = l } }

// NewPipeline returns a pipeline with the default policy.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{policy: DefaultPolicy(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy returns the policy in use.
func (p *Pipeline) Policy() Policy { return p.policy }

// Result holds the output rows and the intermediate tables they were computed from.
type Result struct {
	Instruments *InstrumentTable
	Totals      *TotalsTable
	Rows        []Row
}

// Run computes the rows for holdings. An empty input gives an empty, non nil, output.
func (p *Pipeline) Run(holdings []Holding) (*Result, error) {
	instruments := Aggregate(holdings, p.policy)
	p.log.Debug().Int("holdings", len(holdings)).Int("instruments", instruments.Len()).Msg("aggregated")

	weighted := Weigh(instruments)
	totals := Totalize(weighted)
	p.log.Debug().Int("portfolios", totals.Len()).Msg("totalized")

	rows, err := Normalize(weighted, totals)
	if err != nil {
		return nil, err
	}

	if n := countUnbounded(rows); n > 0 {
		p.log.Warn().Int("values", n).Msg("unbounded weights or contributions passed through")
	}
	return &Result{Instruments: instruments, Totals: totals, Rows: rows}, nil
}

// Compute runs a new pipeline configured with opts over holdings and returns the output rows.
func Compute(holdings []Holding, opts ...Option) ([]Row, error) {
	res, err := NewPipeline(opts...).Run(holdings)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// countUnbounded counts the infinite weights and contributions of rows.
func countUnbounded(rows []Row) (n int) {
	for _, r := range rows {
		for _, v := range []float64{r.InstrumentWeight, r.DurationExposureWeight, r.CurrencyExposureWeight} {
			if math.IsInf(v, 0) {
				n++
			}
		}
		for _, m := range Measures {
			if math.IsInf(r.Contrib[m], 0) {
				n++
			}
			if math.IsInf(r.ContribWeight[m], 0) {
				n++
			}
		}
	}
	return n
}
