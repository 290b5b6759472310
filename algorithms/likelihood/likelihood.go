// Package likelihood implements the negative log likelihood of the extreme
// value family and the observed information covariance estimate derived from
// it.
//
// Parameter vectors here use the classical extreme value parameterization, in
// which positive shape means a heavy upper tail. That is the negation of the
// shape sign the distribution package reports; callers fitting in one
// convention and evaluating in the other must negate the shape at the
// boundary between the two.
package likelihood

import (
	"math"
)

// NegLogLikelihood evaluates the negative log likelihood of the sample at the
// parameter vector theta.
//
// A 3-vector theta is (shape, location, scale) with shape != 0 handled as
//
//	L = n*log(scale) + (1 + 1/shape)*sum(log(z_i)) + sum(z_i^(-1/shape))
//
// where z_i = 1 + shape*(x_i - location)/scale, and a 2-vector (location,
// scale) or a zero shape selects the Gumbel limit
//
//	L = n*log(scale) + sum(w_i) + sum(exp(-w_i))
//
// with w_i = (x_i - location)/scale.
//
// Infeasible parameters (non-positive scale, any z_i <= 0, or a non-finite
// vector) yield +Inf so an optimizer can step through infeasible regions
// without a domain error. Any other theta length panics.
func NegLogLikelihood(data, theta []float64) float64 {
	switch len(theta) {
	case 3:
		return gevNLL(data, theta[0], theta[1], theta[2])
	case 2:
		return gumbelNLL(data, theta[0], theta[1])
	default:
		panic("likelihood: theta must have length 2 or 3")
	}
}

// Func binds the sample, yielding the negative log likelihood as a function
// of the parameter vector alone, the form gonum optimize and diff/fd expect.
func Func(data []float64) func(theta []float64) float64 {
	return func(theta []float64) float64 {
		return NegLogLikelihood(data, theta)
	}
}

func gevNLL(data []float64, shape, loc, scale float64) float64 {
	if !(scale > 0) || math.IsInf(scale, 1) {
		return math.Inf(1)
	}
	if shape == 0 {
		return gumbelNLL(data, loc, scale)
	}
	var sumLog, sumPow float64
	for _, x := range data {
		z := 1 + shape*(x-loc)/scale
		if z <= 0 || math.IsNaN(z) {
			return math.Inf(1)
		}
		logz := math.Log(z)
		sumLog += logz
		sumPow += math.Exp(-logz / shape)
	}
	return float64(len(data))*math.Log(scale) + (1+1/shape)*sumLog + sumPow
}

func gumbelNLL(data []float64, loc, scale float64) float64 {
	if !(scale > 0) || math.IsInf(scale, 1) {
		return math.Inf(1)
	}
	var sum float64
	for _, x := range data {
		w := (x - loc) / scale
		if math.IsNaN(w) {
			return math.Inf(1)
		}
		sum += w + math.Exp(-w)
	}
	return float64(len(data))*math.Log(scale) + sum
}
