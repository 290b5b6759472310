package extremes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/evtools/goextremes/algorithms/distribution"
)

// ReturnPeriodGrid pairs return periods, measured in blocks, with the event
// frequency in events per block. The level exceeded on average once every T
// blocks is InverseSurvival(Frequency/T).
type ReturnPeriodGrid struct {
	Periods   []float64 `json:"periods"`
	Frequency float64   `json:"frequency"`
}

// DefaultReturnPeriodGrid spans 0.1 through 500 blocks in steps of 0.1 at
// one event per block, the conventional engineering range for annual maxima.
func DefaultReturnPeriodGrid() ReturnPeriodGrid {
	return ReturnPeriodGrid{
		Periods:   floats.Span(make([]float64, 5000), 0.1, 500),
		Frequency: 1,
	}
}

// Validate checks that the frequency is positive and finite and the periods
// are positive, finite and strictly ascending.
func (g ReturnPeriodGrid) Validate() error {
	if !(g.Frequency > 0) || math.IsInf(g.Frequency, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, g.Frequency)
	}
	if len(g.Periods) == 0 {
		return fmt.Errorf("%w: no periods", ErrInvalidReturnPeriod)
	}
	last := math.Inf(-1)
	for i, t := range g.Periods {
		if !(t > 0) || math.IsInf(t, 1) {
			return fmt.Errorf("%w: %v at index %d", ErrInvalidReturnPeriod, t, i)
		}
		if t <= last {
			return fmt.Errorf("%w: periods must be strictly ascending at index %d", ErrInvalidReturnPeriod, i)
		}
		last = t
	}
	return nil
}

// Finite returns the subgrid of periods with Frequency/T in (0, 1), the
// ones a finite return level and confidence bound exist for.
func (g ReturnPeriodGrid) Finite() ReturnPeriodGrid {
	out := ReturnPeriodGrid{Frequency: g.Frequency}
	for _, t := range g.Periods {
		if t > g.Frequency {
			out.Periods = append(out.Periods, t)
		}
	}
	return out
}

// Levels maps the grid through the evaluator's inverse survival function.
// Periods with Frequency/T > 1 have no level and yield NaN; T equal to the
// frequency yields the lower endpoint of the support.
func (g ReturnPeriodGrid) Levels(dist distribution.Continuous) []float64 {
	out := make([]float64, len(g.Periods))
	for i, t := range g.Periods {
		q := g.Frequency / t
		if q > 1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = dist.InverseSurvival(q)
	}
	return out
}
