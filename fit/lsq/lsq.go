package lsq

import (
	"errors"
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-calib/fit"
)

// Default solver settings.
const (
	DefaultMaxEvaluations = 2000
	DefaultFTol           = 1e-16
	DefaultXTol           = 1e-8
	DefaultGTol           = 1e-8
	DefaultDamping        = 1e-3
)

// Errors returned by Fit. All of them wrap a fit sentinel.
var (
	ErrTooFewPoints     = fmt.Errorf("lsq: need more points than parameters: %w", fit.ErrInsufficientData)
	ErrLengthMismatch   = errors.New("lsq: x and y lengths differ")
	ErrBadInitialGuess  = fmt.Errorf("lsq: initial guess has wrong length or is not finite: %w", fit.ErrFitDivergence)
	ErrEvaluationLimit  = fmt.Errorf("lsq: evaluation limit reached: %w", fit.ErrFitDivergence)
	ErrSingular         = fmt.Errorf("lsq: singular covariance: %w", fit.ErrFitDivergence)
	ErrNonFiniteResidue = fmt.Errorf("lsq: non-finite residuals: %w", fit.ErrFitDivergence)
	ErrSolver           = fmt.Errorf("lsq: solver failed: %w", fit.ErrFitDivergence)
)

// Model is a parametric curve y = f(x; p) with analytic gradient.
type Model interface {
	NumParams() int
	Eval(x float64, p []float64) float64
	// Grad writes df/dp_j at x into dst[j].
	Grad(dst []float64, x float64, p []float64)
}

// Settings bounds and tunes the solver. Zero values select the defaults.
type Settings struct {
	MaxEvaluations int     // residual evaluations allowed, one per iteration plus the initial one
	FTol           float64 // objective value that counts as converged
	XTol           float64 // relative step size that counts as converged
	GTol           float64 // max |J^T r| that counts as converged
	Damping        float64 // initial damping, relative to max(diag(J^T J))
}

func (s Settings) normalized() Settings {
	if s.MaxEvaluations <= 0 {
		s.MaxEvaluations = DefaultMaxEvaluations
	}

	if s.FTol <= 0 {
		s.FTol = DefaultFTol
	}

	if s.XTol <= 0 {
		s.XTol = DefaultXTol
	}

	if s.GTol <= 0 {
		s.GTol = DefaultGTol
	}

	if s.Damping <= 0 {
		s.Damping = DefaultDamping
	}

	return s
}

// Result holds the fitted parameters and their uncertainties.
type Result struct {
	Params      []float64
	StdErr      []float64
	Cov         *mat.SymDense
	SSR         float64 // sum of squared residuals at Params
	Evaluations int
}

// problem carries the working state of a single fit.
type problem struct {
	model Model
	x, y  []float64
	evals int
}

// residuals writes f(x_i; p) - y_i into dst.
func (pr *problem) residuals(dst, p []float64) {
	for i, x := range pr.x {
		dst[i] = pr.model.Eval(x, p) - pr.y[i]
	}
}

// counted is residuals as seen by the solver; finite-difference Jacobian
// evaluations are not counted.
func (pr *problem) counted(dst, p []float64) {
	pr.evals++
	pr.residuals(dst, p)
}

func (pr *problem) ssr(p []float64) (float64, error) {
	r := make([]float64, len(pr.x))
	pr.residuals(r, p)

	sum := 0.0
	for _, v := range r {
		sum += v * v
	}

	if !fit.Finite(sum) {
		return 0, ErrNonFiniteResidue
	}

	return sum, nil
}

// normal builds J^T J into a at p from the model's analytic gradient.
func (pr *problem) normal(a *mat.SymDense, p []float64) {
	np := len(p)
	grad := make([]float64, np)

	for j := range np {
		for k := j; k < np; k++ {
			a.SetSym(j, k, 0)
		}
	}

	for _, x := range pr.x {
		pr.model.Grad(grad, x, p)

		for j := range np {
			for k := j; k < np; k++ {
				a.SetSym(j, k, a.At(j, k)+grad[j]*grad[k])
			}
		}
	}
}

// Fit fits model to (x, y) starting from p0.
func Fit(model Model, x, y, p0 []float64, settings Settings) (Result, error) {
	if len(x) != len(y) {
		return Result{}, ErrLengthMismatch
	}

	np := model.NumParams()
	if len(p0) != np || !fit.FiniteSlice(p0) {
		return Result{}, ErrBadInitialGuess
	}

	if len(x) <= np {
		return Result{}, ErrTooFewPoints
	}

	s := settings.normalized()
	pr := &problem{model: model, x: x, y: y}
	jac := lm.NumJac{Func: pr.residuals}

	res, err := lm.LM(lm.LMProblem{
		Dim:        np,
		Size:       len(x),
		Func:       pr.counted,
		Jac:        jac.Jac,
		InitParams: append([]float64(nil), p0...),
		Tau:        s.Damping,
		Eps1:       s.GTol,
		Eps2:       s.XTol,
	}, &lm.Settings{Iterations: s.MaxEvaluations, ObjectiveTol: s.FTol})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSolver, err)
	}

	// Every iteration evaluates one trial point, so a solver that ran out
	// of iterations has used one evaluation more than the cap.
	if pr.evals > s.MaxEvaluations {
		return Result{}, ErrEvaluationLimit
	}

	p := append([]float64(nil), res.X...)
	if !fit.FiniteSlice(p) {
		return Result{}, ErrNonFiniteResidue
	}

	cost, err := pr.ssr(p)
	if err != nil {
		return Result{}, err
	}

	return finish(pr, p, cost)
}

func finish(pr *problem, p []float64, cost float64) (Result, error) {
	np := len(p)
	a := mat.NewSymDense(np, nil)
	pr.normal(a, p)

	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return Result{}, ErrSingular
	}

	inv := mat.NewSymDense(np, nil)

	err := chol.InverseTo(inv)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	dof := float64(len(pr.x) - np)
	inv.ScaleSym(cost/dof, inv)

	stderr := make([]float64, np)
	for j := range np {
		v := inv.At(j, j)
		if v < 0 {
			return Result{}, ErrSingular
		}
		stderr[j] = math.Sqrt(v)
	}

	if !fit.FiniteSlice(stderr) {
		return Result{}, ErrSingular
	}

	return Result{
		Params:      p,
		StdErr:      stderr,
		Cov:         inv,
		SSR:         cost,
		Evaluations: pr.evals,
	}, nil
}
