package extremes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/evtools/goextremes/algorithms/likelihood"
)

// DeltaIntervals computes confidence intervals by the delta method: the
// observed-information covariance is propagated through the analytic
// gradient of the return-level transform, and parameter intervals are the
// symmetric normal ones. Requires an mle fit; ci is the two-sided tail
// mass, e.g. 0.05 for 95% intervals.
//
// The covariance and the gradient are derived in the classical
// parameterization whose shape is the negation of the public one. The seam
// is crossed exactly here: the public shape is negated on entry, and since
// the resulting intervals are symmetric about the estimate they translate
// back unchanged.
//
// Delta intervals assume asymptotic normality and a locally linear
// transform; for small samples or extreme shapes they can cross hard
// distributional bounds. That is a known limitation of the method, not an
// error this package detects.
func (m *Model) DeltaIntervals(ci float64) (*ConfidenceIntervals, error) {
	if m.method != FitMethodMLE {
		return nil, fmt.Errorf("%w: delta intervals require %q, got %q", ErrIncompatibleCIMethod, FitMethodMLE, m.method)
	}
	if err := checkConfidence(ci); err != nil {
		return nil, err
	}

	theta := classicalTheta(m.family, m.params)
	cov, err := likelihood.Covariance(m.sample.data, theta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCovarianceUnavailable, err)
	}
	se := likelihood.StdErrors(cov)
	q := distuv.UnitNormal.Quantile(1 - ci/2)

	out := &ConfidenceIntervals{Method: CIMethodDelta, Confidence: ci}
	if m.family == FamilyGumbel {
		out.Shape = Interval{}
		out.Loc = symmetricInterval(m.params.Loc, q*se[0])
		out.Scale = symmetricInterval(m.params.Scale, q*se[1])
	} else {
		out.Shape = symmetricInterval(m.params.Shape, q*se[0])
		out.Loc = symmetricInterval(m.params.Loc, q*se[1])
		out.Scale = symmetricInterval(m.params.Scale, q*se[2])
	}

	fin := m.grid.Finite()
	out.Periods = fin.Periods
	out.ReturnLevels = make([]Interval, len(fin.Periods))
	gradData := make([]float64, len(theta))
	grad := mat.NewVecDense(len(theta), gradData)
	for i, t := range fin.Periods {
		sv := fin.Frequency / t
		s := -math.Log1p(-sv)
		z := m.dist.InverseSurvival(sv)
		returnLevelGrad(gradData, m.family, theta, s)
		variance := mat.Inner(grad, cov, grad)
		half := q * math.Sqrt(variance)
		out.ReturnLevels[i] = Interval{Lower: z - half, Upper: z + half}
	}
	return out, nil
}

// returnLevelGrad fills dst with the gradient of the return level with
// respect to the classical parameters, at reduced variate s = -log(1 - p)
// for exceedance probability p.
//
// GEV with shape c != 0, where z = loc - scale*(1 - s^(-c))/c:
//
//	dz/dc     = scale*(1 - s^(-c))/c^2 - scale*s^(-c)*log(s)/c
//	dz/dloc   = 1
//	dz/dscale = -(1 - s^(-c))/c
//
// Gumbel: dz/dloc = 1, dz/dscale = -log(s), which are also the c -> 0
// limits of the GEV derivatives together with dz/dc -> scale*log(s)^2/2.
func returnLevelGrad(dst []float64, family Family, theta []float64, s float64) {
	logs := math.Log(s)
	if family == FamilyGumbel {
		dst[0] = 1
		dst[1] = -logs
		return
	}
	c, scale := theta[0], theta[2]
	if c == 0 {
		dst[0] = scale * logs * logs / 2
		dst[1] = 1
		dst[2] = -logs
		return
	}
	sc := math.Pow(s, -c)
	dst[0] = scale*(1-sc)/(c*c) - scale*sc*logs/c
	dst[1] = 1
	dst[2] = -(1 - sc) / c
}

func symmetricInterval(point, half float64) Interval {
	return Interval{Lower: point - half, Upper: point + half}
}

func checkConfidence(ci float64) error {
	if math.IsNaN(ci) || ci <= 0 || ci >= 1 {
		return fmt.Errorf("%w: %v is outside (0, 1)", ErrInvalidConfidence, ci)
	}
	return nil
}
