package likelihood

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// ErrSingularInformation reports an observed information matrix that is
// singular or not positive definite, so no covariance estimate exists at the
// supplied optimum.
var ErrSingularInformation = errors.New("likelihood: observed information matrix is singular or not positive definite")

// Covariance estimates the parameter covariance matrix at the fitted optimum
// theta by inverting the observed information matrix, the finite difference
// Hessian of the negative log likelihood. theta uses the same classical
// parameterization and length convention as NegLogLikelihood, so the result
// is 3x3 for a GEV vector and 2x2 for a Gumbel vector.
//
// The Hessian must be finite and positive definite; anything else means the
// sample carries no usable curvature information at theta (degenerate data,
// or an optimum on the feasibility boundary) and ErrSingularInformation is
// returned. That is a failure of the uncertainty estimate only, the optimum
// itself remains valid.
func Covariance(data, theta []float64) (*mat.SymDense, error) {
	n := len(theta)
	hess := mat.NewSymDense(n, nil)
	fd.Hessian(hess, Func(data), theta, nil)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if v := hess.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite curvature at entry (%d,%d)", ErrSingularInformation, i, j)
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(hess); !ok {
		return nil, ErrSingularInformation
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularInformation, err)
	}
	return &cov, nil
}

// StdErrors returns the square roots of the covariance diagonal in parameter
// order.
func StdErrors(cov *mat.SymDense) []float64 {
	se := make([]float64, cov.SymmetricDim())
	for i := range se {
		se[i] = math.Sqrt(cov.At(i, i))
	}
	return se
}
