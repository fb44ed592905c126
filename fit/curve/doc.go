// Package curve provides the closed-form curve models used by the
// calibration fitters.
//
// The plain functions (ModifiedErf, Gaussian, Polynomial) evaluate a model
// at a single point. The Erf and Gauss types wrap the same formulas as
// parametric models with analytic partial derivatives, ready to be handed
// to the non-linear solver in package lsq:
//
//	res, err := lsq.Fit(curve.Erf{}, x, y, []float64{height, center, width}, lsq.Settings{})
//
// Sample produces dense evaluations for plotting fitted curves.
package curve
