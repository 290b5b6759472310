package extremes

import "errors"

// Configuration errors, detected before any numerical work.
var (
	ErrUnsupportedFamily      = errors.New("extremes: unsupported distribution family")
	ErrUnknownFitMethod       = errors.New("extremes: unknown fit method")
	ErrUnknownCIMethod        = errors.New("extremes: unknown confidence method")
	ErrIncompatibleCIMethod   = errors.New("extremes: confidence method incompatible with fit method")
	ErrInvalidConfidence      = errors.New("extremes: confidence level out of range")
	ErrInvalidReturnPeriod    = errors.New("extremes: invalid return period")
	ErrInvalidFrequency       = errors.New("extremes: event frequency must be positive and finite")
	ErrInvalidBootstrapConfig = errors.New("extremes: invalid bootstrap configuration")
)

// Fit failures. The point estimate is unusable.
var (
	ErrInsufficientData = errors.New("extremes: not enough observations")
	ErrNonFiniteData    = errors.New("extremes: sample contains non-finite values")
	ErrDegenerateSample = errors.New("extremes: sample has no dispersion")
	ErrFitDiverged      = errors.New("extremes: optimizer failed to converge")
	ErrNonPositiveScale = errors.New("extremes: fit produced a non-positive scale")
)

// Confidence interval failures. The point estimate stays valid; only the
// intervals are unavailable.
var (
	ErrCovarianceUnavailable = errors.New("extremes: parameter covariance unavailable")
	ErrBootstrapUnstable     = errors.New("extremes: too many bootstrap replicates failed to converge")
	ErrNoIntervals           = errors.New("extremes: no confidence intervals were requested")
)
