package extremes_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate"

	"github.com/evtools/goextremes/extremes"
)

// TestDensitySeriesIntegratesToOne verifies the density curve spans the
// sample, stays non-negative and carries essentially all the probability
// mass.
func TestDensitySeriesIntegratesToOne(t *testing.T) {
	model, err := extremes.FitGumbel(gumbelDraws(150, 10, 2, 33, 34))
	require.NoError(t, err)

	pts := model.DensitySeries(400)
	require.Len(t, pts, 400)

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, pt := range pts {
		xs[i] = pt.X
		ys[i] = pt.Y
		assert.GreaterOrEqual(t, pt.Y, 0.0)
		if i > 0 {
			assert.Greater(t, pt.X, pts[i-1].X)
		}
	}
	s := model.Describe()
	assert.LessOrEqual(t, xs[0], s.Min)
	assert.GreaterOrEqual(t, xs[len(xs)-1], s.Max)
	assert.InDelta(t, 1.0, integrate.Trapezoidal(xs, ys), 0.01)

	assert.Len(t, model.DensitySeries(0), 200)
}

// TestPPSeriesTracksDiagonal verifies the probability-probability points use
// Weibull plotting positions and stay close to the diagonal when the model
// fits.
func TestPPSeriesTracksDiagonal(t *testing.T) {
	model, err := extremes.FitGumbel(gumbelDraws(150, 10, 2, 35, 36))
	require.NoError(t, err)

	pts := model.PPSeries()
	n := len(pts)
	require.Equal(t, model.Sample().N(), n)

	for i, pt := range pts {
		assert.Equal(t, float64(i+1)/float64(n+1), pt.X)
		assert.GreaterOrEqual(t, pt.Y, 0.0)
		assert.LessOrEqual(t, pt.Y, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, pt.Y, pts[i-1].Y)
		}
		assert.InDelta(t, pt.X, pt.Y, 0.2)
	}
}

// TestQQSeriesOrderedAgainstSample verifies the quantile-quantile points put
// the ordered sample on the vertical axis against nondecreasing model
// quantiles.
func TestQQSeriesOrderedAgainstSample(t *testing.T) {
	model, err := extremes.FitGumbel(gumbelDraws(150, 10, 2, 37, 38))
	require.NoError(t, err)

	pts := model.QQSeries()
	require.Equal(t, model.Sample().N(), len(pts))

	sorted := model.Sample().Data()
	slices.Sort(sorted)
	for i, pt := range pts {
		assert.Equal(t, sorted[i], pt.Y)
		assert.False(t, math.IsInf(pt.X, 0))
		if i > 0 {
			assert.GreaterOrEqual(t, pt.X, pts[i-1].X)
		}
	}
}

// TestReturnLevelSeriesMatchesReturnLevel verifies the curve is exactly the
// pointwise ReturnLevel over the finite grid.
func TestReturnLevelSeriesMatchesReturnLevel(t *testing.T) {
	cfg := extremes.DefaultConfig(extremes.FamilyGumbel)
	cfg.ReturnPeriods = smallGrid
	model, err := extremes.Fit(gumbelDraws(100, 10, 2, 39, 40), cfg)
	require.NoError(t, err)

	pts := model.ReturnLevelSeries()
	require.Len(t, pts, len(smallGrid))
	for i, pt := range pts {
		assert.Equal(t, smallGrid[i], pt.X)
		z, err := model.ReturnLevel(pt.X)
		require.NoError(t, err)
		assert.Equal(t, z, pt.Y)
		if i > 0 {
			assert.Greater(t, pt.Y, pts[i-1].Y)
		}
	}
}

// TestEmpiricalReturnLevels verifies the plotting positions frequency*n/rank
// against the ordered sample, largest observation last.
func TestEmpiricalReturnLevels(t *testing.T) {
	model, err := extremes.FitGumbel(annualMaxima)
	require.NoError(t, err)

	pts := model.EmpiricalReturnLevels()
	n := len(annualMaxima)
	require.Len(t, pts, n)

	sorted := slices.Clone(annualMaxima)
	slices.Sort(sorted)
	for i, pt := range pts {
		assert.Equal(t, float64(n)/float64(n-i), pt.X)
		assert.Equal(t, sorted[i], pt.Y)
	}
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, float64(n), pts[n-1].X)

	// Plotting positions scale with the event frequency: four events per
	// block stretch every empirical period by four.
	cfg := extremes.DefaultConfig(extremes.FamilyGumbel)
	cfg.Frequency = 4
	quarterly, err := extremes.Fit(annualMaxima, cfg)
	require.NoError(t, err)
	qpts := quarterly.EmpiricalReturnLevels()
	require.Len(t, qpts, n)
	for i, pt := range qpts {
		assert.Equal(t, 4*pts[i].X, pt.X)
	}
	assert.Equal(t, 4.0, qpts[0].X)
	assert.Equal(t, 4.0*float64(n), qpts[n-1].X)
}
