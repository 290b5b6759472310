// Package lmoments provides sample L-moment computation and the closed form
// L-moment parameter estimators for the extreme value family.
//
// L-moments are linear combinations of order statistics. They give robust
// closed form parameter estimates without any optimization, and they are the
// standard starting point for likelihood refinement because the extreme value
// likelihood surface is poorly conditioned in the shape parameter.
//
// References:
//   - Hosking, J.R.M. (1990). "L-moments: Analysis and Estimation of
//     Distributions Using Linear Combinations of Order Statistics"
//   - Hosking, J.R.M., Wallis, J.R. (1997). "Regional Frequency Analysis"
package lmoments

import (
	"fmt"
	"math"
	"sort"
)

// Euler-Mascheroni constant.
const eulerGamma = 0.57721566490153286060651209008240243

// Moments holds the first three sample L-moments and the L-skewness ratio.
type Moments struct {
	L1 float64 `json:"l1"` // location
	L2 float64 `json:"l2"` // dispersion
	L3 float64 `json:"l3"`
	T3 float64 `json:"t3"` // L-skewness, L3/L2
}

// Sample computes the first three L-moments of the data from the unbiased
// probability weighted moment estimators b0, b1, b2:
//
//	l1 = b0
//	l2 = 2*b1 - b0
//	l3 = 6*b2 - 6*b1 + b0
//
// At least three observations are required, and constant data is rejected
// because the dispersion l2 vanishes.
func Sample(data []float64) (Moments, error) {
	if len(data) < 3 {
		return Moments{}, fmt.Errorf("lmoments: need at least 3 observations, got %d", len(data))
	}
	b0, b1, b2 := pwm(data)
	m := Moments{
		L1: b0,
		L2: 2*b1 - b0,
		L3: 6*b2 - 6*b1 + b0,
	}
	if !(m.L2 > 0) {
		return Moments{}, fmt.Errorf("lmoments: degenerate sample, second L-moment is %v", m.L2)
	}
	m.T3 = m.L3 / m.L2
	return m, nil
}

// FitGEV estimates GEV (shape, location, scale) from the sample L-moments
// using the Hosking rational approximation
//
//	z = 2/(3 + t3) - log(2)/log(3)
//	k = 7.8590*z + 2.9554*z^2
//
// followed by the exact inversion of l1 and l2 given k. The shape is reported
// with positive values meaning a bounded upper tail, matching the
// distribution package. A |k| below 1e-8 falls back to the Gumbel limit with
// the shape fixed at zero.
func FitGEV(data []float64) (shape, loc, scale float64, err error) {
	m, err := Sample(data)
	if err != nil {
		return 0, 0, 0, err
	}
	z := 2/(3+m.T3) - math.Ln2/math.Log(3)
	k := z * (7.8590 + 2.9554*z)
	if math.Abs(k) < 1e-8 {
		loc, scale = gumbelFromMoments(m.L1, m.L2)
		return 0, loc, scale, nil
	}
	gk := math.Gamma(1 + k)
	scale = m.L2 * k / ((1 - math.Exp2(-k)) * gk)
	loc = m.L1 - scale*(1-gk)/k
	return k, loc, scale, nil
}

// FitGumbel estimates Gumbel (location, scale) from the first two sample
// L-moments: scale = l2/log(2) and location = l1 - gamma*scale. Two
// observations suffice; constant data is rejected.
func FitGumbel(data []float64) (loc, scale float64, err error) {
	if len(data) < 2 {
		return 0, 0, fmt.Errorf("lmoments: need at least 2 observations, got %d", len(data))
	}
	b0, b1, _ := pwm(data)
	l2 := 2*b1 - b0
	if !(l2 > 0) {
		return 0, 0, fmt.Errorf("lmoments: degenerate sample, second L-moment is %v", l2)
	}
	loc, scale = gumbelFromMoments(b0, l2)
	return loc, scale, nil
}

func gumbelFromMoments(l1, l2 float64) (loc, scale float64) {
	scale = l2 / math.Ln2
	loc = l1 - eulerGamma*scale
	return loc, scale
}

// pwm computes the unbiased sample probability weighted moments b0, b1, b2 of
// Landwehr, Matalas and Wallis. b2 is zero when fewer than three observations
// are available.
func pwm(data []float64) (b0, b1, b2 float64) {
	n := len(data)
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	nf := float64(n)
	for i, x := range sorted {
		fi := float64(i) // zero based rank
		b0 += x
		b1 += fi * x
		if n > 2 {
			b2 += fi * (fi - 1) * x
		}
	}
	b0 /= nf
	b1 /= nf * (nf - 1)
	if n > 2 {
		b2 /= nf * (nf - 1) * (nf - 2)
	}
	return b0, b1, b2
}
