package exposure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance is the absolute and relative tolerance used to compare a sum of weights to 1.
const Tolerance = 1e-9

// AnomalyKind classifies the values downstream consumers must guard against.
type AnomalyKind int

const (
	// Unbounded is an infinite weight or contribution, from a non zero value over a zero denominator.
	Unbounded AnomalyKind = iota
	// DegenerateTotal is a portfolio whose total contribution is 0 while some contributions are not.
	DegenerateTotal
	// Unnormalized is a portfolio with a finite non zero total whose weights do not sum to 1.
	Unnormalized
)

func (k AnomalyKind) String() string {
	switch k {
	case Unbounded:
		return "unbounded"
	case DegenerateTotal:
		return "degenerate total"
	case Unnormalized:
		return "unnormalized"
	default:
		return fmt.Sprintf("AnomalyKind(%d)", int(k))
	}
}

// Anomaly is a value that was passed through unchanged but needs the consumer's attention.
type Anomaly struct {
	Kind      AnomalyKind
	Portfolio PortfolioKey
	Row       int    // index of the row in the inspected slice, -1 for a whole portfolio
	Column    string // one of Columns
	Value     float64
}

func (a Anomaly) String() string {
	where := fmt.Sprintf("portfolio %v/%v on %v", a.Portfolio.PortfolioGroup, a.Portfolio.Portfolio, a.Portfolio.Date)
	if a.Row >= 0 {
		where = fmt.Sprintf("row %d of %s", a.Row, where)
	}
	return fmt.Sprintf("%s: %s %s = %v", a.Kind, where, a.Column, a.Value)
}

// Inspect lists the anomalies of rows: unbounded values first, in row order,
// then portfolio level anomalies, in portfolio order.
func Inspect(rows []Row) []Anomaly {
	var list []Anomaly
	members := make(map[PortfolioKey][]int)
	for i, r := range rows {
		k := r.PortfolioKey()
		members[k] = append(members[k], i)
		for c, v := range r.Values() {
			if f, ok := v.(float64); ok && math.IsInf(f, 0) {
				list = append(list, Anomaly{Kind: Unbounded, Portfolio: k, Row: i, Column: Columns[c], Value: f})
			}
		}
	}

	totals := Totalize(rows)
	for _, tot := range totals.Totals {
		for _, m := range Measures {
			total := tot.Contrib[m]
			weights := make([]float64, 0, len(members[tot.Key]))
			nonZero := false
			for _, i := range members[tot.Key] {
				weights = append(weights, rows[i].ContribWeight[m])
				if c := rows[i].Contrib[m]; c != 0 && !math.IsNaN(c) {
					nonZero = true
				}
			}
			switch {
			case total == 0 && nonZero:
				list = append(list, Anomaly{Kind: DegenerateTotal, Portfolio: tot.Key, Row: -1, Column: m.String() + "_contrib", Value: total})
			case total != 0 && !math.IsInf(total, 0) && !math.IsNaN(total):
				if sum := floats.Sum(weights); !scalar.EqualWithinAbsOrRel(sum, 1, Tolerance, Tolerance) {
					list = append(list, Anomaly{Kind: Unnormalized, Portfolio: tot.Key, Row: -1, Column: m.String() + "_contrib_weight", Value: sum})
				}
			}
		}
	}
	return list
}
