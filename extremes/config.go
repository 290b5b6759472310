package extremes

import (
	"fmt"
	"math"
	"runtime"
)

// Family selects the distribution family to fit.
type Family string

const (
	FamilyGEV    Family = "gev"
	FamilyGumbel Family = "gumbel"

	// FamilyGPD names the peaks-over-threshold family. It is recognized so
	// callers get a clear error, but fitting it is not implemented.
	FamilyGPD Family = "gpd"
)

// freeParams is the number of free parameters of the family; Gumbel pins
// the shape at zero.
func (f Family) freeParams() int {
	if f == FamilyGumbel {
		return 2
	}
	return 3
}

// FitMethod selects the parameter estimation procedure.
type FitMethod string

const (
	// FitMethodMLE refines an L-moments seed by quasi-Newton maximum
	// likelihood.
	FitMethodMLE FitMethod = "mle"
	// FitMethodLMoments is the closed-form L-moments estimator.
	FitMethodLMoments FitMethod = "lmoments"
	// FitMethodMoments matches the first sample moments to the theoretical
	// ones.
	FitMethodMoments FitMethod = "mom"
)

// CIMethod selects the confidence interval procedure.
type CIMethod string

const (
	// CIMethodDelta propagates the observed-information covariance through
	// the return-level gradient. Valid only with FitMethodMLE.
	CIMethodDelta CIMethod = "delta"
	// CIMethodBootstrap draws parametric replicates from the fitted model
	// and takes percentile intervals. Valid with every fit method.
	CIMethodBootstrap CIMethod = "bootstrap"
)

// Config controls a Fit call.
//
// Confidence is the two-sided tail mass: 0.05 requests 95% intervals and 0
// means no intervals, in which case CIMethod must be empty. ReturnPeriods
// and Frequency default to the standard grid (0.1 through 500 blocks, one
// event per block). EventUnit and BlockUnit are labels carried through to
// the model for reporting, e.g. "m3/s" and "year".
type Config struct {
	Family        Family          `json:"family"`
	FitMethod     FitMethod       `json:"fit_method"`
	Confidence    float64         `json:"confidence"`
	CIMethod      CIMethod        `json:"ci_method"`
	ReturnPeriods []float64       `json:"return_periods"`
	Frequency     float64         `json:"frequency"`
	Bootstrap     BootstrapConfig `json:"bootstrap"`
	EventUnit     string          `json:"event_unit"`
	BlockUnit     string          `json:"block_unit"`
}

// BootstrapConfig tunes the parametric bootstrap. Zero values select
// defaults: 500 replicates, a random seed, GOMAXPROCS workers and a redraw
// budget of twice the replicate count.
type BootstrapConfig struct {
	Replicates int    `json:"replicates"`
	Seed       uint64 `json:"seed"`
	Workers    int    `json:"workers"`
	MaxRedraws int    `json:"max_redraws"`
}

// DefaultConfig returns the configuration FitGEV and FitGumbel use: maximum
// likelihood on the default grid with no confidence intervals.
func DefaultConfig(family Family) *Config {
	return &Config{
		Family:    family,
		FitMethod: FitMethodMLE,
		Frequency: 1,
		Bootstrap: DefaultBootstrapConfig(),
	}
}

// DefaultBootstrapConfig returns the default bootstrap settings.
func DefaultBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{Replicates: 500}
}

// Validate reports the first configuration problem as Fit would see it,
// with defaults applied.
func (c *Config) Validate() error {
	return c.withDefaults().validate()
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Frequency == 0 {
		out.Frequency = 1
	}
	if len(out.ReturnPeriods) == 0 {
		out.ReturnPeriods = DefaultReturnPeriodGrid().Periods
	}
	out.Bootstrap = out.Bootstrap.withDefaults()
	return &out
}

func (c *Config) validate() error {
	switch c.Family {
	case FamilyGEV, FamilyGumbel:
	case FamilyGPD:
		return fmt.Errorf("%w: peaks-over-threshold fitting is not implemented", ErrUnsupportedFamily)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFamily, c.Family)
	}

	switch c.FitMethod {
	case FitMethodMLE, FitMethodLMoments, FitMethodMoments:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFitMethod, c.FitMethod)
	}

	if math.IsNaN(c.Confidence) || c.Confidence < 0 || c.Confidence >= 1 {
		return fmt.Errorf("%w: %v is outside (0, 1)", ErrInvalidConfidence, c.Confidence)
	}
	if c.Confidence == 0 {
		if c.CIMethod != "" {
			return fmt.Errorf("%w: method %q requested with zero confidence level", ErrInvalidConfidence, c.CIMethod)
		}
	} else {
		switch c.CIMethod {
		case CIMethodDelta:
			if c.FitMethod != FitMethodMLE {
				return fmt.Errorf("%w: delta intervals require %q, got %q", ErrIncompatibleCIMethod, FitMethodMLE, c.FitMethod)
			}
		case CIMethodBootstrap:
			if err := c.Bootstrap.validate(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownCIMethod, c.CIMethod)
		}
	}

	grid := ReturnPeriodGrid{Periods: c.ReturnPeriods, Frequency: c.Frequency}
	if err := grid.Validate(); err != nil {
		return err
	}
	if c.Confidence > 0 && len(grid.Finite().Periods) == 0 {
		return fmt.Errorf("%w: confidence intervals need a period beyond the event frequency %v", ErrInvalidReturnPeriod, c.Frequency)
	}
	return nil
}

func (b BootstrapConfig) withDefaults() BootstrapConfig {
	if b.Replicates == 0 {
		b.Replicates = DefaultBootstrapConfig().Replicates
	}
	if b.MaxRedraws == 0 {
		b.MaxRedraws = 2 * b.Replicates
	}
	if b.Workers == 0 {
		b.Workers = runtime.GOMAXPROCS(0)
	}
	return b
}

func (b BootstrapConfig) validate() error {
	if b.Replicates < 1 {
		return fmt.Errorf("%w: replicates %d", ErrInvalidBootstrapConfig, b.Replicates)
	}
	if b.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidBootstrapConfig, b.Workers)
	}
	if b.MaxRedraws < 0 {
		return fmt.Errorf("%w: max redraws %d", ErrInvalidBootstrapConfig, b.MaxRedraws)
	}
	return nil
}
