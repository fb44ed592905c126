package ivcurve_test

import (
	"fmt"

	"github.com/cwbudde/algo-calib/measure/ivcurve"
)

func ExampleFitForward() {
	// 20 ohm quenching resistor: I [mA] = 50 * V - 70 above the knee.
	sweep := ivcurve.Sweep{Sensor: "1", Direction: ivcurve.Forward}
	for k := range 60 {
		v := float64(k) * 0.05
		sweep.V = append(sweep.V, v)
		sweep.I = append(sweep.I, 50*v-70)
	}

	res, err := ivcurve.FitForward(sweep, ivcurve.DefaultStartVoltage)
	if err != nil {
		panic(err)
	}

	fmt.Printf("R_q = %.1f +/- %.1f ohm\n", res.RQuenching, res.RQuenchingStd)

	// Output:
	// R_q = 20.0 +/- 0.6 ohm
}
