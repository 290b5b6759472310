// Package extremes fits extreme value distributions to block-maxima samples
// and quantifies the uncertainty of the parameters and of derived return
// levels.
//
// Three estimators are available: maximum likelihood (an L-moments seed
// refined by quasi-Newton optimization), closed-form L-moments, and the
// method of moments. Two confidence procedures cover uncertainty: the delta
// method, propagating the observed-information covariance through the
// return-level gradient, and a parametric bootstrap with percentile
// intervals. The delta method requires the maximum likelihood fit; the
// bootstrap works with every estimator.
//
//	cfg := extremes.DefaultConfig(extremes.FamilyGEV)
//	cfg.Confidence = 0.05
//	cfg.CIMethod = extremes.CIMethodDelta
//	model, err := extremes.Fit(annualMaxima, cfg)
//	if err != nil {
//		return err
//	}
//	z100, err := model.ReturnLevel(100)
//	iv, err := model.Intervals()
//
// A fitted Model is immutable. It exposes the usual distribution queries
// (PDF, CDF, Quantile, Survival, InverseSurvival), return levels over a
// configurable period grid, diagnostic series for plotting layers, and the
// requested confidence intervals. The shape parameter follows the
// convention of the distribution package: positive shape means a bounded
// upper tail.
package extremes
