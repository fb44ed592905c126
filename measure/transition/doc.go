// Package transition extracts the transition point of a photon-sensor
// S-curve scan.
//
// A scan is a monotonic response y(x) that swings from a baseline plateau
// to a saturation plateau as the threshold x is varied. Two estimates of the
// transition point are produced:
//
//   - Linear: flat padding at both ends is trimmed, a straight line is
//     regressed through the remaining points, and the transition point is
//     where the line crosses half of the trimmed swing.
//   - Erf: a modified error function (see curve.ModifiedErf) is fitted to
//     the full, untrimmed scan, seeded with the amplitude, transition point
//     and width recorded in the scan header.
//
// # Usage
//
//	scan := transition.Scan{X: x, Y: y, Seed: transition.Seed{Amplitude: 1000, Transition: 120, Width: 6}}
//	res, err := transition.Fit(scan)
//	if err != nil {
//	    // errors.Is(err, fit.ErrInsufficientData) / fit.ErrFitDivergence
//	}
//	fmt.Println(res.Linear.TransitionPoint, res.Erf.TransitionPoint, res.Erf.TransitionPointStd)
package transition
