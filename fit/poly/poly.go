// Package poly fits least-squares polynomials.
//
// Abscissae are mapped linearly onto [-1, 1] before the fit to keep the
// Vandermonde system well conditioned; Coefficients converts the result
// back to ascending powers of the raw variable.
package poly

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-calib/fit"
	"github.com/cwbudde/algo-calib/fit/curve"
)

// Errors returned by Fit.
var (
	ErrLengthMismatch = errors.New("poly: x and y lengths differ")
	ErrInvalidDegree  = errors.New("poly: degree must be >= 0")
	ErrTooFewPoints   = fmt.Errorf("poly: need more points than the degree: %w", fit.ErrInsufficientData)
	ErrDegenerate     = fmt.Errorf("poly: degenerate abscissae: %w", fit.ErrFitDivergence)
)

// Poly is a fitted polynomial over a scaled domain.
type Poly struct {
	scaled []float64 // ascending coefficients in t = off + scl*x
	off    float64
	scl    float64
}

// Fit returns the least-squares polynomial of the given degree through (x, y).
func Fit(x, y []float64, degree int) (Poly, error) {
	if len(x) != len(y) {
		return Poly{}, ErrLengthMismatch
	}

	if degree < 0 {
		return Poly{}, ErrInvalidDegree
	}

	n, m := len(x), degree+1
	if n < m {
		return Poly{}, ErrTooFewPoints
	}

	lo, hi := floats.Min(x), floats.Max(x)
	if !(hi > lo) && degree > 0 {
		return Poly{}, ErrDegenerate
	}

	p := Poly{off: 0, scl: 1}
	if hi > lo {
		p.scl = 2 / (hi - lo)
		p.off = -(hi + lo) / (hi - lo)
	}

	v := mat.NewDense(n, m, nil)
	for i, xi := range x {
		t := p.off + p.scl*xi
		pow := 1.0
		for k := range m {
			v.Set(i, k, pow)
			pow *= t
		}
	}

	var c mat.VecDense

	err := c.SolveVec(v, mat.NewVecDense(n, append([]float64(nil), y...)))
	if err != nil {
		return Poly{}, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	p.scaled = make([]float64, m)
	for k := range m {
		p.scaled[k] = c.AtVec(k)
	}

	if !fit.FiniteSlice(p.scaled) {
		return Poly{}, ErrDegenerate
	}

	return p, nil
}

// Degree returns the polynomial degree.
func (p Poly) Degree() int {
	return len(p.scaled) - 1
}

// Eval evaluates the polynomial at x.
func (p Poly) Eval(x float64) float64 {
	return curve.Polynomial(p.off+p.scl*x, p.scaled)
}

// EvalSlice evaluates the polynomial at every x and returns the values.
func (p Poly) EvalSlice(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = p.Eval(v)
	}

	return out
}

// Coefficients returns the ascending coefficients in powers of the raw
// variable, so that curve.Polynomial(x, p.Coefficients()) == p.Eval(x) up
// to rounding.
func (p Poly) Coefficients() []float64 {
	m := len(p.scaled)
	out := make([]float64, m)

	// t^k = sum_j C(k,j) off^(k-j) scl^j x^j
	for k, ck := range p.scaled {
		binom := 1.0
		for j := 0; j <= k; j++ {
			if j > 0 {
				binom = binom * float64(k-j+1) / float64(j)
			}
			out[j] += ck * binom * pow(p.off, k-j) * pow(p.scl, j)
		}
	}

	return out
}

func pow(x float64, n int) float64 {
	r := 1.0
	for range n {
		r *= x
	}

	return r
}
