package extremes

// Interval is a two-sided confidence bound.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether x lies inside the closed interval.
func (iv Interval) Contains(x float64) bool {
	return iv.Lower <= x && x <= iv.Upper
}

// ConfidenceIntervals holds the interval for each parameter and for each
// return period, computed once and never mutated. Confidence is the
// two-sided tail mass the intervals were requested at: 0.05 means 95%
// intervals. Periods lists the finite part of the model grid; ReturnLevels
// is indexed in step with it. For Gumbel fits the shape interval is the
// degenerate (0, 0).
type ConfidenceIntervals struct {
	Method       CIMethod   `json:"method"`
	Confidence   float64    `json:"confidence"`
	Shape        Interval   `json:"shape"`
	Loc          Interval   `json:"loc"`
	Scale        Interval   `json:"scale"`
	Periods      []float64  `json:"periods"`
	ReturnLevels []Interval `json:"return_levels"`
}

// ReturnLevelAt returns the interval for the given return period, matching
// against the grid the intervals were computed on.
func (c *ConfidenceIntervals) ReturnLevelAt(period float64) (Interval, bool) {
	for i, t := range c.Periods {
		if t == period {
			return c.ReturnLevels[i], true
		}
	}
	return Interval{}, false
}
