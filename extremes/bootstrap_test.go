package extremes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evtools/goextremes/extremes"
)

func fitWithBootstrap(t *testing.T, family extremes.Family, data []float64, bs extremes.BootstrapConfig) *extremes.Model {
	t.Helper()
	cfg := extremes.DefaultConfig(family)
	cfg.Confidence = 0.05
	cfg.CIMethod = extremes.CIMethodBootstrap
	cfg.ReturnPeriods = smallGrid
	cfg.Bootstrap = bs
	model, err := extremes.Fit(data, cfg)
	require.NoError(t, err)
	return model
}

// TestBootstrapIntervalsCoverPointEstimates verifies the percentile
// intervals bracket the fitted parameters and return levels.
func TestBootstrapIntervalsCoverPointEstimates(t *testing.T) {
	bs := extremes.BootstrapConfig{Replicates: 200, Seed: 7}
	model := fitWithBootstrap(t, extremes.FamilyGumbel, gumbelDraws(60, 10, 2, 21, 22), bs)

	iv, err := model.Intervals()
	require.NoError(t, err)
	assert.Equal(t, extremes.CIMethodBootstrap, iv.Method)
	assert.Equal(t, 0.05, iv.Confidence)

	// Every Gumbel refit has shape zero, so the percentile interval
	// collapses to the point.
	assert.Equal(t, extremes.Interval{}, iv.Shape)

	p := model.Params()
	assert.True(t, iv.Loc.Contains(p.Loc))
	assert.True(t, iv.Scale.Contains(p.Scale))
	assert.Less(t, iv.Loc.Lower, iv.Loc.Upper)
	assert.Less(t, iv.Scale.Lower, iv.Scale.Upper)

	require.Equal(t, smallGrid, iv.Periods)
	require.Len(t, iv.ReturnLevels, len(smallGrid))
	for i, period := range iv.Periods {
		z, err := model.ReturnLevel(period)
		require.NoError(t, err)
		bound := iv.ReturnLevels[i]
		assert.True(t, bound.Contains(z), "period %v: %v outside [%v, %v]", period, z, bound.Lower, bound.Upper)
		assert.Less(t, bound.Lower, bound.Upper)
	}
}

// TestBootstrapGEVCoverage runs the same containment checks on a
// three-parameter fit.
func TestBootstrapGEVCoverage(t *testing.T) {
	bs := extremes.BootstrapConfig{Replicates: 150, Seed: 11}
	model := fitWithBootstrap(t, extremes.FamilyGEV, gevDraws(80, 0.1, 10, 2, 51, 52), bs)

	iv, err := model.Intervals()
	require.NoError(t, err)

	p := model.Params()
	assert.True(t, iv.Shape.Contains(p.Shape))
	assert.True(t, iv.Loc.Contains(p.Loc))
	assert.True(t, iv.Scale.Contains(p.Scale))
	assert.Less(t, iv.Shape.Lower, iv.Shape.Upper)
	for i, period := range iv.Periods {
		z, err := model.ReturnLevel(period)
		require.NoError(t, err)
		assert.True(t, iv.ReturnLevels[i].Contains(z), "period %v", period)
	}
}

// TestBootstrapDeterminism verifies a fixed seed reproduces the intervals
// exactly and a different seed does not.
func TestBootstrapDeterminism(t *testing.T) {
	model, err := extremes.FitGumbel(gumbelDraws(50, 10, 2, 61, 62))
	require.NoError(t, err)

	bs := extremes.BootstrapConfig{Replicates: 100, Seed: 42}
	first, err := model.BootstrapIntervals(0.05, bs)
	require.NoError(t, err)
	second, err := model.BootstrapIntervals(0.05, bs)
	require.NoError(t, err)
	require.Equal(t, first, second)

	bs.Seed = 43
	third, err := model.BootstrapIntervals(0.05, bs)
	require.NoError(t, err)
	assert.NotEqual(t, first.Loc, third.Loc)
}

// TestBootstrapWideningConfidence verifies that with the replicate set held
// fixed by the seed, a smaller tail mass gives nested wider intervals.
func TestBootstrapWideningConfidence(t *testing.T) {
	model, err := extremes.FitGumbel(gumbelDraws(60, 10, 2, 71, 72))
	require.NoError(t, err)

	bs := extremes.BootstrapConfig{Replicates: 200, Seed: 13}
	narrow, err := model.BootstrapIntervals(0.10, bs)
	require.NoError(t, err)
	wide, err := model.BootstrapIntervals(0.05, bs)
	require.NoError(t, err)

	assert.LessOrEqual(t, wide.Loc.Lower, narrow.Loc.Lower)
	assert.GreaterOrEqual(t, wide.Loc.Upper, narrow.Loc.Upper)
	assert.LessOrEqual(t, wide.Scale.Lower, narrow.Scale.Lower)
	assert.GreaterOrEqual(t, wide.Scale.Upper, narrow.Scale.Upper)
	require.Equal(t, narrow.Periods, wide.Periods)
	for i := range narrow.Periods {
		assert.LessOrEqual(t, wide.ReturnLevels[i].Lower, narrow.ReturnLevels[i].Lower)
		assert.GreaterOrEqual(t, wide.ReturnLevels[i].Upper, narrow.ReturnLevels[i].Upper)
	}
}

// TestBootstrapReplicateCountStability verifies intervals from independent
// runs with different replicate counts agree to well within the parameter
// uncertainty.
func TestBootstrapReplicateCountStability(t *testing.T) {
	model, err := extremes.FitGumbel(gumbelDraws(100, 10, 2, 81, 82))
	require.NoError(t, err)

	small, err := model.BootstrapIntervals(0.05, extremes.BootstrapConfig{Replicates: 200, Seed: 3})
	require.NoError(t, err)
	large, err := model.BootstrapIntervals(0.05, extremes.BootstrapConfig{Replicates: 400, Seed: 9})
	require.NoError(t, err)

	assert.InDelta(t, small.Loc.Lower, large.Loc.Lower, 0.2)
	assert.InDelta(t, small.Loc.Upper, large.Loc.Upper, 0.2)
	assert.InDelta(t, small.Scale.Lower, large.Scale.Lower, 0.2)
	assert.InDelta(t, small.Scale.Upper, large.Scale.Upper, 0.2)
}

// TestBootstrapWithLMomentsFit verifies the percentile bootstrap is
// available for non-likelihood fits, where the delta method is not.
func TestBootstrapWithLMomentsFit(t *testing.T) {
	cfg := extremes.DefaultConfig(extremes.FamilyGEV)
	cfg.FitMethod = extremes.FitMethodLMoments
	cfg.Confidence = 0.05
	cfg.CIMethod = extremes.CIMethodBootstrap
	cfg.ReturnPeriods = smallGrid
	cfg.Bootstrap = extremes.BootstrapConfig{Replicates: 100, Seed: 5}

	model, err := extremes.Fit(gevDraws(100, 0.1, 10, 2, 91, 92), cfg)
	require.NoError(t, err)
	assert.Equal(t, extremes.FitMethodLMoments, model.Method())

	iv, err := model.Intervals()
	require.NoError(t, err)
	assert.Equal(t, extremes.CIMethodBootstrap, iv.Method)
	p := model.Params()
	assert.True(t, iv.Loc.Contains(p.Loc))
	assert.True(t, iv.Scale.Contains(p.Scale))
}

// TestBootstrapValidation covers the post hoc argument checks.
func TestBootstrapValidation(t *testing.T) {
	model, err := extremes.FitGumbel(annualMaxima)
	require.NoError(t, err)

	_, err = model.BootstrapIntervals(0, extremes.BootstrapConfig{})
	assert.ErrorIs(t, err, extremes.ErrInvalidConfidence)

	_, err = model.BootstrapIntervals(0.05, extremes.BootstrapConfig{Replicates: -5})
	assert.ErrorIs(t, err, extremes.ErrInvalidBootstrapConfig)

	_, err = model.BootstrapIntervals(0.05, extremes.BootstrapConfig{MaxRedraws: -1})
	assert.ErrorIs(t, err, extremes.ErrInvalidBootstrapConfig)
}

// TestBootstrapNoFinitePeriods verifies the computation refuses a grid with
// no period beyond the event frequency.
func TestBootstrapNoFinitePeriods(t *testing.T) {
	cfg := extremes.DefaultConfig(extremes.FamilyGumbel)
	cfg.ReturnPeriods = []float64{0.25, 0.5}
	model, err := extremes.Fit(annualMaxima, cfg)
	require.NoError(t, err)

	_, err = model.BootstrapIntervals(0.05, extremes.BootstrapConfig{Replicates: 50, Seed: 1})
	assert.ErrorIs(t, err, extremes.ErrInvalidReturnPeriod)
}
