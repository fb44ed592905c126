// Package ivcurve extracts silicon photomultiplier parameters from
// current-voltage sweeps.
//
// A forward sweep yields the quenching resistance: a straight line is
// regressed through the samples above a start voltage and the resistance is
// the reciprocal of its slope (I in mA, so R = 1000/slope in ohm).
//
// A reverse sweep yields the breakdown voltage. The normalized derivative
// (1/I) dI/dV is smoothed with a degree-5 polynomial, the sample with the
// largest smoothed value is taken as a peak estimate, and a Gaussian fitted
// to the smoothed curve within a window around that peak gives the
// breakdown voltage as its mean.
//
// # Usage
//
//	fwd, err := ivcurve.FitForward(sweep, ivcurve.DefaultStartVoltage)
//	rev, err := ivcurve.FitReverse(sweep, ivcurve.DefaultPeakHalfWidth)
//
// Sensors are independent; FitGroups fits a set of sweeps on a bounded
// number of goroutines and returns results in input order.
package ivcurve
