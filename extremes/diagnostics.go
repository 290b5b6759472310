package extremes

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// SeriesPoint is one x/y pair of a diagnostic series. The series methods
// below produce plot-ready data for an external visualization layer; no
// drawing happens in this package.
type SeriesPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DensitySeries returns n points of the fitted density, spanning the 0.1
// through 99.9 percent quantiles stretched to cover the sample range. Fewer
// than two requested points falls back to 200.
func (m *Model) DensitySeries(n int) []SeriesPoint {
	if n < 2 {
		n = 200
	}
	lo := math.Min(m.dist.Quantile(0.001), m.sample.summary.Min)
	hi := math.Max(m.dist.Quantile(0.999), m.sample.summary.Max)
	xs := floats.Span(make([]float64, n), lo, hi)
	out := make([]SeriesPoint, n)
	for i, x := range xs {
		out[i] = SeriesPoint{X: x, Y: m.dist.Prob(x)}
	}
	return out
}

// PPSeries returns probability-probability points: Weibull plotting
// positions i/(n+1) against the model CDF at the ordered sample.
func (m *Model) PPSeries() []SeriesPoint {
	xs := m.sample.Data()
	slices.Sort(xs)
	n := len(xs)
	out := make([]SeriesPoint, n)
	for i, x := range xs {
		out[i] = SeriesPoint{
			X: float64(i+1) / float64(n+1),
			Y: m.dist.CDF(x),
		}
	}
	return out
}

// QQSeries returns quantile-quantile points: the model quantile at each
// plotting position against the ordered sample.
func (m *Model) QQSeries() []SeriesPoint {
	xs := m.sample.Data()
	slices.Sort(xs)
	n := len(xs)
	out := make([]SeriesPoint, n)
	for i, x := range xs {
		out[i] = SeriesPoint{
			X: m.dist.Quantile(float64(i+1) / float64(n+1)),
			Y: x,
		}
	}
	return out
}

// ReturnLevelSeries returns the model return-level curve over the finite
// part of the grid.
func (m *Model) ReturnLevelSeries() []SeriesPoint {
	fin := m.grid.Finite()
	levels := fin.Levels(m.dist)
	out := make([]SeriesPoint, len(fin.Periods))
	for i, t := range fin.Periods {
		out[i] = SeriesPoint{X: t, Y: levels[i]}
	}
	return out
}

// EmpiricalReturnLevels pairs each observation with its empirical return
// period frequency*n/rank, ranking from the largest observation down, for
// overplotting against ReturnLevelSeries. The quotient rank/n is the per
// block exceedance rate, so the periods share the Frequency/T survival
// convention of the model curve.
func (m *Model) EmpiricalReturnLevels() []SeriesPoint {
	xs := m.sample.Data()
	slices.Sort(xs)
	n := len(xs)
	out := make([]SeriesPoint, n)
	for i, x := range xs {
		rank := float64(n - i)
		out[i] = SeriesPoint{
			X: m.grid.Frequency * float64(n) / rank,
			Y: x,
		}
	}
	return out
}
