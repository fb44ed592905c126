// Package lsq implements bounded non-linear least squares curve fitting on
// top of the Levenberg-Marquardt solver in github.com/maorshutman/lm.
//
// The solver minimises sum((y[i] - f(x[i]; p))^2) for a parametric Model.
// Settings.MaxEvaluations bounds the solver iterations; every iteration
// evaluates the residuals once, and a fit that exhausts them is reported
// as ErrEvaluationLimit rather than returning a half-converged answer.
//
// After convergence the parameter covariance is estimated from the model's
// analytic gradient the way scipy.optimize.curve_fit does without absolute
// sigma:
//
//	cov = (J^T J)^-1 * SSR / (n - p)
//
// A singular J^T J (for example a sigmoid whose transition lies outside
// the sampled range) yields ErrSingular, which wraps fit.ErrFitDivergence.
package lsq
