package distribution

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gumbel is the Gumbel (type I extreme value) distribution with location Loc
// and scale Scale. It is the Shape == 0 member of the GEV family.
//
// Evaluation delegates to distuv.GumbelRight; this type fixes the parameter
// naming used across the module and adds the inverse survival function.
type Gumbel struct {
	Loc   float64
	Scale float64
	Src   rand.Source
}

// NewGumbel returns a Gumbel distribution after validating that both
// parameters are finite and the scale is strictly positive.
func NewGumbel(loc, scale float64, src rand.Source) (Gumbel, error) {
	switch {
	case math.IsNaN(loc) || math.IsInf(loc, 0):
		return Gumbel{}, fmt.Errorf("distribution: location must be finite, got %v", loc)
	case math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0:
		return Gumbel{}, fmt.Errorf("distribution: scale must be finite and positive, got %v", scale)
	}
	return Gumbel{Loc: loc, Scale: scale, Src: src}, nil
}

func (g Gumbel) dist() distuv.GumbelRight {
	return distuv.GumbelRight{Mu: g.Loc, Beta: g.Scale, Src: g.Src}
}

// CDF computes the value of the cumulative distribution function at x.
func (g Gumbel) CDF(x float64) float64 {
	return g.dist().CDF(x)
}

// Survival computes the complement of the CDF at x.
func (g Gumbel) Survival(x float64) float64 {
	return g.dist().Survival(x)
}

// Prob computes the value of the probability density function at x.
func (g Gumbel) Prob(x float64) float64 {
	return g.dist().Prob(x)
}

// LogProb computes the natural logarithm of the value of the probability
// density function at x.
func (g Gumbel) LogProb(x float64) float64 {
	return g.dist().LogProb(x)
}

// Quantile returns the inverse of the CDF: the x such that CDF(x) == p.
// Quantile panics if p is not in [0, 1].
func (g Gumbel) Quantile(p float64) float64 {
	if p < 0 || p > 1 {
		panic(badProb)
	}
	return g.dist().Quantile(p)
}

// InverseSurvival returns the inverse of the survival function: the x such
// that Survival(x) == q. InverseSurvival panics if q is not in [0, 1].
func (g Gumbel) InverseSurvival(q float64) float64 {
	if q < 0 || q > 1 {
		panic(badProb)
	}
	return g.Loc - g.Scale*math.Log(-math.Log1p(-q))
}

// Mean returns the mean of the distribution.
func (g Gumbel) Mean() float64 {
	return g.dist().Mean()
}

// Variance returns the variance of the distribution.
func (g Gumbel) Variance() float64 {
	return g.dist().Variance()
}

// StdDev returns the standard deviation of the distribution.
func (g Gumbel) StdDev() float64 {
	return g.dist().StdDev()
}

// Mode returns the mode of the distribution.
func (g Gumbel) Mode() float64 {
	return g.Loc
}

// NumParameters returns the number of parameters in the distribution.
func (g Gumbel) NumParameters() int {
	return g.dist().NumParameters()
}

// Rand returns a random sample drawn from the distribution.
func (g Gumbel) Rand() float64 {
	return g.dist().Rand()
}
