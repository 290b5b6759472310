package extremes

import (
	"fmt"
	"math"
	"slices"

	"github.com/evtools/goextremes/algorithms/moments"
)

// Sample is an immutable block-maxima sample together with its descriptive
// summary.
type Sample struct {
	data    []float64
	summary moments.Summary
}

// NewSample copies and validates the observations: at least two finite
// values with positive dispersion.
func NewSample(data []float64) (*Sample, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", ErrInsufficientData, len(data))
	}
	buf := make([]float64, len(data))
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %v at index %d", ErrNonFiniteData, x, i)
		}
		buf[i] = x
	}
	summary, err := moments.Describe(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateSample, err)
	}
	if !(summary.Std > 0) {
		return nil, fmt.Errorf("%w: all %d observations equal %v", ErrDegenerateSample, len(buf), buf[0])
	}
	return &Sample{data: buf, summary: summary}, nil
}

// N returns the number of observations.
func (s *Sample) N() int { return len(s.data) }

// Data returns a copy of the observations in their original order.
func (s *Sample) Data() []float64 { return slices.Clone(s.data) }

// Summary returns the descriptive statistics computed at construction.
func (s *Sample) Summary() moments.Summary { return s.summary }
