package extremes

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"

	"github.com/evtools/goextremes/algorithms/distribution"
	"github.com/evtools/goextremes/algorithms/likelihood"
	"github.com/evtools/goextremes/algorithms/lmoments"
	"github.com/evtools/goextremes/algorithms/moments"
	"github.com/evtools/goextremes/logging"
)

// ParameterSet holds fitted parameters in the distribution package's sign
// convention: a positive shape means a bounded upper tail. Gumbel fits carry
// Shape equal to exactly zero. Scale is strictly positive for any fit that
// succeeded.
type ParameterSet struct {
	Shape float64 `json:"shape"`
	Loc   float64 `json:"loc"`
	Scale float64 `json:"scale"`
}

// newEvaluator builds the distribution evaluator for a parameter set. The
// source is only needed when the evaluator will generate synthetic draws.
func newEvaluator(family Family, p ParameterSet, src rand.Source) (distribution.Continuous, error) {
	switch family {
	case FamilyGumbel:
		d, err := distribution.NewGumbel(p.Loc, p.Scale, src)
		if err != nil {
			return nil, fmt.Errorf("extremes: building evaluator: %w", err)
		}
		return d, nil
	case FamilyGEV:
		d, err := distribution.NewGEV(p.Shape, p.Loc, p.Scale, src)
		if err != nil {
			return nil, fmt.Errorf("extremes: building evaluator: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFamily, family)
	}
}

// classicalTheta converts public parameters to the likelihood package's
// vector: (shape, loc, scale) with the shape negated into the classical
// convention, or (loc, scale) for Gumbel.
func classicalTheta(family Family, p ParameterSet) []float64 {
	if family == FamilyGumbel {
		return []float64{p.Loc, p.Scale}
	}
	return []float64{-p.Shape, p.Loc, p.Scale}
}

// fitFamily dispatches to the requested estimator and enforces the
// positive-scale invariant on whatever comes back.
func fitFamily(family Family, method FitMethod, data []float64) (ParameterSet, error) {
	if need := family.freeParams(); len(data) < need {
		return ParameterSet{}, fmt.Errorf("%w: %s fit needs at least %d observations, got %d",
			ErrInsufficientData, family, need, len(data))
	}

	var p ParameterSet
	var err error
	switch family {
	case FamilyGumbel:
		p, err = fitGumbel(method, data)
	case FamilyGEV:
		p, err = fitGEV(method, data)
	default:
		return ParameterSet{}, fmt.Errorf("%w: %q", ErrUnsupportedFamily, family)
	}
	if err != nil {
		return ParameterSet{}, err
	}
	if !(p.Scale > 0) {
		return ParameterSet{}, fmt.Errorf("%w: scale %v from %s fit", ErrNonPositiveScale, p.Scale, method)
	}
	return p, nil
}

func fitGEV(method FitMethod, data []float64) (ParameterSet, error) {
	switch method {
	case FitMethodLMoments:
		shape, loc, scale, err := lmoments.FitGEV(data)
		if err != nil {
			return ParameterSet{}, fmt.Errorf("%w: %v", ErrDegenerateSample, err)
		}
		return ParameterSet{Shape: shape, Loc: loc, Scale: scale}, nil
	case FitMethodMoments:
		shape, loc, scale, err := moments.FitGEV(data)
		if err != nil {
			return ParameterSet{}, fmt.Errorf("%w: %v", ErrDegenerateSample, err)
		}
		return ParameterSet{Shape: shape, Loc: loc, Scale: scale}, nil
	case FitMethodMLE:
		seed, err := fitGEV(FitMethodLMoments, data)
		if err != nil {
			return ParameterSet{}, err
		}
		return refineMLE(FamilyGEV, data, seed)
	default:
		return ParameterSet{}, fmt.Errorf("%w: %q", ErrUnknownFitMethod, method)
	}
}

func fitGumbel(method FitMethod, data []float64) (ParameterSet, error) {
	switch method {
	case FitMethodLMoments:
		loc, scale, err := lmoments.FitGumbel(data)
		if err != nil {
			return ParameterSet{}, fmt.Errorf("%w: %v", ErrDegenerateSample, err)
		}
		return ParameterSet{Loc: loc, Scale: scale}, nil
	case FitMethodMoments:
		loc, scale, err := moments.FitGumbel(data)
		if err != nil {
			return ParameterSet{}, fmt.Errorf("%w: %v", ErrDegenerateSample, err)
		}
		return ParameterSet{Loc: loc, Scale: scale}, nil
	case FitMethodMLE:
		seed, err := fitGumbel(FitMethodLMoments, data)
		if err != nil {
			return ParameterSet{}, err
		}
		return refineMLE(FamilyGumbel, data, seed)
	default:
		return ParameterSet{}, fmt.Errorf("%w: %q", ErrUnknownFitMethod, method)
	}
}

// refineMLE runs BFGS on the negative log-likelihood from the given seed,
// estimating the gradient by forward differences. The likelihood works in
// the classical parameterization, so the seed's shape is negated on the way
// in and the optimum's negated back.
//
// The likelihood surface is poorly conditioned in the shape; line searches
// routinely stall within float tolerance of the optimum, and the incumbent
// is kept whenever it still improved on the seed. A non-finite optimum or
// one worse than the seed is a divergence.
func refineMLE(family Family, data []float64, seed ParameterSet) (ParameterSet, error) {
	x0 := classicalTheta(family, seed)
	nll := likelihood.Func(data)
	problem := optimize.Problem{
		Func: nll,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, nll, x, nil)
		},
	}
	seedF := nll(x0)

	result, err := optimize.Minimize(problem, x0, nil, &optimize.BFGS{})
	if err != nil {
		if result == nil {
			return ParameterSet{}, fmt.Errorf("%w: %v", ErrFitDiverged, err)
		}
		logging.WithFields(logging.Fields{"component": "fit", "family": string(family)}).
			Debug("optimizer stopped early, keeping incumbent", logging.Fields{
				"status": result.Status.String(),
				"reason": err.Error(),
			})
	}
	if result == nil || len(result.X) != len(x0) {
		return ParameterSet{}, fmt.Errorf("%w: optimizer returned no point", ErrFitDiverged)
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) || result.F > seedF {
		return ParameterSet{}, fmt.Errorf("%w: objective %v from seed objective %v", ErrFitDiverged, result.F, seedF)
	}
	scale := result.X[len(result.X)-1]
	if !(scale > 0) {
		return ParameterSet{}, fmt.Errorf("%w: scale %v after refinement", ErrNonPositiveScale, scale)
	}

	if family == FamilyGumbel {
		return ParameterSet{Shape: 0, Loc: result.X[0], Scale: scale}, nil
	}
	return ParameterSet{Shape: -result.X[0], Loc: result.X[1], Scale: scale}, nil
}
