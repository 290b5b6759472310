package extremes

import (
	"fmt"
	"math"
	"slices"

	"github.com/evtools/goextremes/algorithms/distribution"
	"github.com/evtools/goextremes/algorithms/moments"
	"github.com/evtools/goextremes/logging"
)

// Model is an immutable fitted extreme value model: the parameter point
// estimate, the distribution evaluator built from it, the sample it was
// fitted to, and the confidence intervals when they were requested at fit
// time.
type Model struct {
	family    Family
	method    FitMethod
	params    ParameterSet
	dist      distribution.Continuous
	sample    *Sample
	grid      ReturnPeriodGrid
	eventUnit string
	blockUnit string
	intervals *ConfidenceIntervals
	ciErr     error
}

// Fit validates the configuration, fits the selected family to the data and
// computes confidence intervals when cfg.Confidence is non-zero.
//
// Configuration and fit errors abort the call. An interval failure does
// not: the model is returned with its point estimate intact and the failure
// is reported by Intervals.
func Fit(data []float64, cfg *Config) (*Model, error) {
	if cfg == nil {
		return nil, fmt.Errorf("extremes: nil config")
	}
	norm := cfg.withDefaults()
	if err := norm.validate(); err != nil {
		return nil, err
	}
	log := logging.WithFields(logging.Fields{
		"component": "model",
		"family":    string(norm.Family),
		"method":    string(norm.FitMethod),
	})

	sample, err := NewSample(data)
	if err != nil {
		return nil, err
	}
	params, err := fitFamily(norm.Family, norm.FitMethod, sample.data)
	if err != nil {
		log.Error(err, "fit failed", logging.Fields{"n": sample.N()})
		return nil, err
	}
	dist, err := newEvaluator(norm.Family, params, nil)
	if err != nil {
		return nil, err
	}

	m := &Model{
		family: norm.Family,
		method: norm.FitMethod,
		params: params,
		dist:   dist,
		sample: sample,
		grid: ReturnPeriodGrid{
			Periods:   slices.Clone(norm.ReturnPeriods),
			Frequency: norm.Frequency,
		},
		eventUnit: norm.EventUnit,
		blockUnit: norm.BlockUnit,
	}
	log.Info("fitted distribution", logging.Fields{
		"n":     sample.N(),
		"shape": params.Shape,
		"loc":   params.Loc,
		"scale": params.Scale,
	})

	if norm.Confidence > 0 {
		var iv *ConfidenceIntervals
		var ciErr error
		switch norm.CIMethod {
		case CIMethodDelta:
			iv, ciErr = m.DeltaIntervals(norm.Confidence)
		case CIMethodBootstrap:
			iv, ciErr = m.BootstrapIntervals(norm.Confidence, norm.Bootstrap)
		}
		if ciErr != nil {
			log.Error(ciErr, "confidence intervals unavailable")
			m.ciErr = ciErr
		} else {
			m.intervals = iv
		}
	}
	return m, nil
}

// FitGEV fits a GEV distribution by maximum likelihood with the default
// configuration.
func FitGEV(data []float64) (*Model, error) {
	return Fit(data, DefaultConfig(FamilyGEV))
}

// FitGumbel fits a Gumbel distribution by maximum likelihood with the
// default configuration.
func FitGumbel(data []float64) (*Model, error) {
	return Fit(data, DefaultConfig(FamilyGumbel))
}

// Family returns the fitted distribution family.
func (m *Model) Family() Family { return m.family }

// Method returns the estimator the parameters came from.
func (m *Model) Method() FitMethod { return m.method }

// Params returns the fitted parameters in the public sign convention.
func (m *Model) Params() ParameterSet { return m.params }

// Sample returns the sample the model was fitted to.
func (m *Model) Sample() *Sample { return m.sample }

// Grid returns a copy of the model's return period grid.
func (m *Model) Grid() ReturnPeriodGrid {
	return ReturnPeriodGrid{Periods: slices.Clone(m.grid.Periods), Frequency: m.grid.Frequency}
}

// Units returns the event and block unit labels from the configuration.
func (m *Model) Units() (event, block string) {
	return m.eventUnit, m.blockUnit
}

// Describe returns the descriptive summary of the fitted sample.
func (m *Model) Describe() moments.Summary { return m.sample.Summary() }

// Distribution returns the fitted evaluator.
func (m *Model) Distribution() distribution.Continuous { return m.dist }

// Intervals returns the confidence intervals computed at fit time. When the
// fit succeeded but the interval computation failed, that error is returned
// here; when no intervals were requested the error is ErrNoIntervals.
func (m *Model) Intervals() (*ConfidenceIntervals, error) {
	if m.intervals != nil {
		return m.intervals, nil
	}
	if m.ciErr != nil {
		return nil, m.ciErr
	}
	return nil, ErrNoIntervals
}

// PDF evaluates the fitted density at x.
func (m *Model) PDF(x float64) float64 { return m.dist.Prob(x) }

// CDF evaluates the fitted cumulative distribution at x.
func (m *Model) CDF(x float64) float64 { return m.dist.CDF(x) }

// Survival evaluates the fitted exceedance probability at x.
func (m *Model) Survival(x float64) float64 { return m.dist.Survival(x) }

// Quantile evaluates the fitted quantile function; it panics when p is
// outside [0, 1], matching the evaluator contract.
func (m *Model) Quantile(p float64) float64 { return m.dist.Quantile(p) }

// InverseSurvival evaluates the fitted inverse survival function; it panics
// when q is outside [0, 1], matching the evaluator contract.
func (m *Model) InverseSurvival(q float64) float64 { return m.dist.InverseSurvival(q) }

// ReturnLevel returns the level exceeded on average once every period
// blocks, InverseSurvival(frequency/period).
func (m *Model) ReturnLevel(period float64) (float64, error) {
	if !(period > 0) || math.IsInf(period, 1) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidReturnPeriod, period)
	}
	q := m.grid.Frequency / period
	if q > 1 {
		return 0, fmt.Errorf("%w: %v is below the event frequency %v", ErrInvalidReturnPeriod, period, m.grid.Frequency)
	}
	return m.dist.InverseSurvival(q), nil
}

// ReturnLevels evaluates return levels for the given periods, or over the
// model's whole grid when periods is nil. Periods with frequency/T > 1 have
// no level and yield NaN.
func (m *Model) ReturnLevels(periods []float64) []float64 {
	g := m.grid
	if periods != nil {
		g = ReturnPeriodGrid{Periods: periods, Frequency: m.grid.Frequency}
	}
	return g.Levels(m.dist)
}
