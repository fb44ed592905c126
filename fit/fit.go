// Package fit holds the error kinds and small numeric guards shared by the
// curve-fitting packages under fit/ and measure/.
//
// Fitters never return a result containing NaN or Inf. When a computation
// cannot produce finite values they return an error that wraps one of the
// sentinels below, so callers can classify failures with errors.Is:
//
//	res, err := transition.Fit(scan)
//	switch {
//	case errors.Is(err, fit.ErrInsufficientData):
//	    // too few points after trimming or windowing
//	case errors.Is(err, fit.ErrFitDivergence):
//	    // solver did not converge or the covariance is singular
//	}
package fit

import (
	"errors"
	"math"
)

// Errors shared by all fitters.
var (
	ErrInsufficientData = errors.New("fit: insufficient data")
	ErrFitDivergence    = errors.New("fit: fit did not converge")
)

// Finite reports whether every value is neither NaN nor Inf.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// FiniteSlice reports whether every element of x is finite.
func FiniteSlice(x []float64) bool {
	return Finite(x...)
}
