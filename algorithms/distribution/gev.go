package distribution

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// GEV is the generalized extreme value distribution with shape parameter
// Shape, location Loc and scale Scale.
//
// The shape sign follows the scipy.stats.genextreme convention: positive
// Shape gives a bounded upper tail (reversed Weibull domain of attraction),
// negative Shape a heavy upper tail (Frechet domain). This is the negation of
// the convention used by Coles. With y = (x-Loc)/Scale and Shape != 0 the
// distribution function is
//
//	F(x) = exp(-(1 - Shape*y)^(1/Shape))
//
// on the support 1 - Shape*y > 0. Shape == 0 is the Gumbel limit, to which
// every method delegates exactly.
//
// References:
//   - Coles, S. (2001). "An Introduction to Statistical Modeling of Extreme Values"
//   - Hosking, J.R.M., Wallis, J.R. (1997). "Regional Frequency Analysis"
type GEV struct {
	Shape float64
	Loc   float64
	Scale float64
	Src   rand.Source
}

// NewGEV returns a GEV distribution after validating that every parameter is
// finite and the scale is strictly positive.
func NewGEV(shape, loc, scale float64, src rand.Source) (GEV, error) {
	switch {
	case math.IsNaN(shape) || math.IsInf(shape, 0):
		return GEV{}, fmt.Errorf("distribution: shape must be finite, got %v", shape)
	case math.IsNaN(loc) || math.IsInf(loc, 0):
		return GEV{}, fmt.Errorf("distribution: location must be finite, got %v", loc)
	case math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0:
		return GEV{}, fmt.Errorf("distribution: scale must be finite and positive, got %v", scale)
	}
	return GEV{Shape: shape, Loc: loc, Scale: scale, Src: src}, nil
}

func (g GEV) gumbel() Gumbel {
	return Gumbel{Loc: g.Loc, Scale: g.Scale, Src: g.Src}
}

// CDF computes the value of the cumulative distribution function at x.
func (g GEV) CDF(x float64) float64 {
	if g.Shape == 0 {
		return g.gumbel().CDF(x)
	}
	u := 1 - g.Shape*(x-g.Loc)/g.Scale
	if u <= 0 {
		if g.Shape > 0 {
			return 1
		}
		return 0
	}
	return math.Exp(-math.Pow(u, 1/g.Shape))
}

// Survival computes the complement of the CDF at x.
func (g GEV) Survival(x float64) float64 {
	if g.Shape == 0 {
		return g.gumbel().Survival(x)
	}
	u := 1 - g.Shape*(x-g.Loc)/g.Scale
	if u <= 0 {
		if g.Shape > 0 {
			return 0
		}
		return 1
	}
	return -math.Expm1(-math.Pow(u, 1/g.Shape))
}

// Prob computes the value of the probability density function at x. Points
// outside the support have zero density.
func (g GEV) Prob(x float64) float64 {
	return math.Exp(g.LogProb(x))
}

// LogProb computes the natural logarithm of the value of the probability
// density function at x. Points outside the support yield -Inf.
func (g GEV) LogProb(x float64) float64 {
	if g.Shape == 0 {
		return g.gumbel().LogProb(x)
	}
	u := 1 - g.Shape*(x-g.Loc)/g.Scale
	if u <= 0 {
		return math.Inf(-1)
	}
	// With t = u^(1/Shape) the density is t^(1-Shape) * exp(-t) / Scale.
	logt := math.Log(u) / g.Shape
	return (1-g.Shape)*logt - math.Exp(logt) - math.Log(g.Scale)
}

// Quantile returns the inverse of the CDF: the x such that CDF(x) == p.
// Quantile panics if p is not in [0, 1].
func (g GEV) Quantile(p float64) float64 {
	if p < 0 || p > 1 {
		panic(badProb)
	}
	if g.Shape == 0 {
		return g.gumbel().Quantile(p)
	}
	return g.Loc + g.Scale*(1-math.Pow(-math.Log(p), g.Shape))/g.Shape
}

// InverseSurvival returns the inverse of the survival function: the x such
// that Survival(x) == q. InverseSurvival panics if q is not in [0, 1].
func (g GEV) InverseSurvival(q float64) float64 {
	if q < 0 || q > 1 {
		panic(badProb)
	}
	if g.Shape == 0 {
		return g.gumbel().InverseSurvival(q)
	}
	s := -math.Log1p(-q)
	return g.Loc + g.Scale*(1-math.Pow(s, g.Shape))/g.Shape
}

// Mean returns the mean of the distribution. The mean is +Inf when
// Shape <= -1.
func (g GEV) Mean() float64 {
	if g.Shape == 0 {
		return g.gumbel().Mean()
	}
	if g.Shape <= -1 {
		return math.Inf(1)
	}
	return g.Loc + g.Scale*(1-math.Gamma(1+g.Shape))/g.Shape
}

// Variance returns the variance of the distribution. The variance is +Inf
// when Shape <= -0.5.
func (g GEV) Variance() float64 {
	if g.Shape == 0 {
		return g.gumbel().Variance()
	}
	if g.Shape <= -0.5 {
		return math.Inf(1)
	}
	g1 := math.Gamma(1 + g.Shape)
	g2 := math.Gamma(1 + 2*g.Shape)
	return g.Scale * g.Scale * (g2 - g1*g1) / (g.Shape * g.Shape)
}

// StdDev returns the standard deviation of the distribution.
func (g GEV) StdDev() float64 {
	return math.Sqrt(g.Variance())
}

// Mode returns the mode of the distribution.
func (g GEV) Mode() float64 {
	if g.Shape == 0 {
		return g.Loc
	}
	return g.Loc + g.Scale*(1-math.Pow(1-g.Shape, g.Shape))/g.Shape
}

// NumParameters returns the number of parameters in the distribution.
func (g GEV) NumParameters() int {
	return 3
}

// Rand returns a random sample drawn from the distribution by inverse
// transform of a unit exponential variate.
func (g GEV) Rand() float64 {
	var e float64
	if g.Src == nil {
		e = rand.ExpFloat64()
	} else {
		e = rand.New(g.Src).ExpFloat64()
	}
	if g.Shape == 0 {
		return g.Loc - g.Scale*math.Log(e)
	}
	return g.Loc + g.Scale*(1-math.Pow(e, g.Shape))/g.Shape
}
