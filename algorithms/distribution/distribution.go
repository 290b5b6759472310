// Package distribution provides the continuous distributions used for block
// maxima modeling: the generalized extreme value family and its Gumbel limit.
//
// Types follow the gonum distuv conventions: value types with exported
// parameters, an optional rand source for sampling, and panics on
// probabilities outside [0, 1]. The shape parameter uses the
// scipy.stats.genextreme sign convention throughout; see GEV.
package distribution

// Continuous is the evaluator contract the fitting and interval layers work
// against. GEV and Gumbel both satisfy it. The method set matches the gonum
// distuv naming with the addition of InverseSurvival, which distuv does not
// provide.
type Continuous interface {
	Prob(x float64) float64
	LogProb(x float64) float64
	CDF(x float64) float64
	Survival(x float64) float64
	Quantile(p float64) float64
	InverseSurvival(q float64) float64
	Mean() float64
	Variance() float64
	StdDev() float64
	Mode() float64
	NumParameters() int
	Rand() float64
}

const badProb = "distribution: probability out of range"
