package transition

import (
	"testing"

	"github.com/cwbudde/algo-calib/internal/testutil"
)

func BenchmarkFit(b *testing.B) {
	x := testutil.Grid(90, 1, 61)
	scan := Scan{
		X:    x,
		Y:    testutil.ErfScan(x, 1000, 120, 6),
		Seed: Seed{Amplitude: 1000, Transition: 118, Width: 5},
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := Fit(scan); err != nil {
			b.Fatal(err)
		}
	}
}
