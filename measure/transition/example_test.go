package transition_test

import (
	"fmt"

	"github.com/cwbudde/algo-calib/fit/curve"
	"github.com/cwbudde/algo-calib/measure/transition"
)

func ExampleFit() {
	// A noiseless S-curve from ADC 100 to 160 with its transition at 130.
	x := make([]float64, 61)
	y := make([]float64, 61)
	for i := range x {
		x[i] = 100 + float64(i)
		y[i] = curve.ModifiedErf(x[i], 1000, 130, 8)
	}

	res, err := transition.Fit(transition.Scan{
		X:    x,
		Y:    y,
		Seed: transition.Seed{Amplitude: 1000, Transition: 128, Width: 6},
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("linear: %.2f\n", res.Linear.TransitionPoint)
	fmt.Printf("erf:    %.2f\n", res.Erf.TransitionPoint)
	fmt.Printf("width:  %.2f\n", res.Erf.Width)

	// Output:
	// linear: 130.00
	// erf:    130.00
	// width:  8.00
}
