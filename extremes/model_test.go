package extremes_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evtools/goextremes/algorithms/distribution"
	"github.com/evtools/goextremes/extremes"
)

// TestModelPassThroughQueries verifies the facade delegates distribution
// queries to an evaluator built from its own parameters.
func TestModelPassThroughQueries(t *testing.T) {
	model, err := extremes.FitGumbel(annualMaxima)
	require.NoError(t, err)

	p := model.Params()
	direct, err := distribution.NewGumbel(p.Loc, p.Scale, nil)
	require.NoError(t, err)

	for _, x := range []float64{9.0, 10.5, 12.0, 14.0} {
		assert.Equal(t, direct.Prob(x), model.PDF(x))
		assert.Equal(t, direct.CDF(x), model.CDF(x))
		assert.Equal(t, direct.Survival(x), model.Survival(x))
	}
	for _, q := range []float64{0.05, 0.5, 0.95} {
		assert.Equal(t, direct.Quantile(q), model.Quantile(q))
		assert.Equal(t, direct.InverseSurvival(q), model.InverseSurvival(q))
	}
}

// TestReturnLevelRoundTrip verifies survival(inverse_survival(frequency/T))
// recovers frequency/T across the whole finite grid.
func TestReturnLevelRoundTrip(t *testing.T) {
	model, err := extremes.FitGEV(gevDraws(200, 0.1, 10, 2, 11, 12))
	require.NoError(t, err)

	grid := model.Grid().Finite()
	for _, period := range grid.Periods {
		target := grid.Frequency / period
		z, err := model.ReturnLevel(period)
		require.NoError(t, err)
		assert.InDelta(t, target, model.Survival(z), 1e-9, "period %v", period)
	}
}

// TestReturnLevelValidation covers the invalid period errors.
func TestReturnLevelValidation(t *testing.T) {
	model, err := extremes.FitGumbel(annualMaxima)
	require.NoError(t, err)

	for _, period := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		_, err := model.ReturnLevel(period)
		assert.ErrorIs(t, err, extremes.ErrInvalidReturnPeriod, "period %v", period)
	}

	// below the event frequency the survival argument exceeds one
	_, err = model.ReturnLevel(0.5)
	assert.ErrorIs(t, err, extremes.ErrInvalidReturnPeriod)
}

// TestReturnLevelsBelowFrequencyAreNaN verifies the vector form marks
// infeasible periods instead of failing.
func TestReturnLevelsBelowFrequencyAreNaN(t *testing.T) {
	model, err := extremes.FitGumbel(annualMaxima)
	require.NoError(t, err)

	levels := model.ReturnLevels([]float64{0.5, 2, 10})
	require.Len(t, levels, 3)
	assert.True(t, math.IsNaN(levels[0]))
	assert.False(t, math.IsNaN(levels[1]))
	assert.Greater(t, levels[2], levels[1])
}

// TestReturnLevelsMonotone verifies fitted return levels increase with the
// period for both families.
func TestReturnLevelsMonotone(t *testing.T) {
	gumbel, err := extremes.FitGumbel(gumbelDraws(150, 10, 2, 21, 22))
	require.NoError(t, err)
	gev, err := extremes.FitGEV(gevDraws(150, 0.15, 10, 2, 23, 24))
	require.NoError(t, err)

	for _, model := range []*extremes.Model{gumbel, gev} {
		levels := model.ReturnLevels(nil)
		grid := model.Grid()
		prev := math.Inf(-1)
		for i, level := range levels {
			if grid.Periods[i] <= grid.Frequency {
				continue
			}
			assert.Greater(t, level, prev, "period %v", grid.Periods[i])
			prev = level
		}
	}
}

// TestIntervalsNotRequested verifies Intervals reports ErrNoIntervals when
// the fit was configured without confidence intervals.
func TestIntervalsNotRequested(t *testing.T) {
	model, err := extremes.FitGumbel(annualMaxima)
	require.NoError(t, err)

	iv, err := model.Intervals()
	assert.Nil(t, iv)
	assert.ErrorIs(t, err, extremes.ErrNoIntervals)
}

// TestSampleImmutability verifies the model keeps its own copy of the data
// and hands out copies.
func TestSampleImmutability(t *testing.T) {
	data := []float64{10.2, 11.5, 9.8, 12.1, 10.9, 11.0, 9.5, 12.8}
	model, err := extremes.FitGumbel(data)
	require.NoError(t, err)

	data[0] = 999
	got := model.Sample().Data()
	assert.Equal(t, 10.2, got[0])

	got[1] = -999
	assert.Equal(t, 11.5, model.Sample().Data()[1])
}

// TestModelDescribe checks the descriptive summary carried by the model.
func TestModelDescribe(t *testing.T) {
	model, err := extremes.FitGumbel(annualMaxima)
	require.NoError(t, err)

	s := model.Describe()
	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 10.975, s.Mean, 1e-12)
	assert.Equal(t, 9.5, s.Min)
	assert.Equal(t, 12.8, s.Max)
}

// TestModelUnits verifies the unit labels pass through from the
// configuration.
func TestModelUnits(t *testing.T) {
	cfg := extremes.DefaultConfig(extremes.FamilyGumbel)
	cfg.EventUnit = "m3/s"
	cfg.BlockUnit = "year"
	model, err := extremes.Fit(annualMaxima, cfg)
	require.NoError(t, err)

	event, block := model.Units()
	assert.Equal(t, "m3/s", event)
	assert.Equal(t, "year", block)
}
