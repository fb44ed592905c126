// Package linear provides ordinary least-squares straight-line regression
// with the diagnostics reported by scipy.stats.linregress: correlation
// coefficient and standard errors of slope and intercept.
package linear

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-calib/fit"
)

// Errors returned by Regress.
var (
	ErrLengthMismatch = errors.New("linear: x and y lengths differ")
	ErrTooFewPoints   = fmt.Errorf("linear: need at least 2 points: %w", fit.ErrInsufficientData)
	ErrConstantX      = fmt.Errorf("linear: all x values are identical: %w", fit.ErrFitDivergence)
)

// Line is the result of a straight-line fit y = Slope*x + Intercept.
type Line struct {
	Slope        float64
	Intercept    float64
	R            float64 // Pearson correlation coefficient
	SlopeErr     float64 // standard error of the slope
	InterceptErr float64 // standard error of the intercept
	N            int
}

// RSquared returns the coefficient of determination R^2.
func (l Line) RSquared() float64 {
	return l.R * l.R
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Regress fits y = a + b*x by ordinary least squares.
//
// With exactly two points the standard errors are zero. A constant y gives
// R == 0 and a zero slope.
func Regress(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, ErrLengthMismatch
	}

	n := len(x)
	if n < 2 {
		return Line{}, ErrTooFewPoints
	}

	xMean, xVar := stat.MeanVariance(x, nil)
	_, yVar := stat.MeanVariance(y, nil)
	if xVar == 0 {
		return Line{}, ErrConstantX
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	r := 0.0
	if yVar != 0 {
		r = stat.Correlation(x, y, nil)
		// Rounding can push |r| a hair past 1.
		r = math.Max(-1, math.Min(1, r))
	}

	line := Line{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		N:         n,
	}

	if df := float64(n - 2); df > 0 {
		line.SlopeErr = math.Sqrt((1 - r*r) * yVar / xVar / df)
		// Population variance of x, as linregress uses.
		ssxm := xVar * float64(n-1) / float64(n)
		line.InterceptErr = line.SlopeErr * math.Sqrt(ssxm+xMean*xMean)
	}

	if !fit.Finite(line.Slope, line.Intercept, line.R, line.SlopeErr, line.InterceptErr) {
		return Line{}, fmt.Errorf("linear: non-finite regression: %w", fit.ErrFitDivergence)
	}

	return line, nil
}
