package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-calib/internal/testutil"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func parseFloat(t *testing.T, s string) float64 {
	t.Helper()

	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)

	return v
}

// scanText renders an erf scan in the Claro layout.
func scanText(height, center, width float64, n int) string {
	x := testutil.Grid(center-float64(n/2), 1, n)
	y := testutil.ErfScan(x, height, center, width)

	var b strings.Builder
	fmt.Fprintf(&b, "%g\t%g\t%g\n", height, center-2, -(width - 1))
	b.WriteString("0\t0\n")
	for k := range x {
		fmt.Fprintf(&b, "%g\t%.17g\n", x[k], y[k])
	}

	return b.String()
}

func scanPath(root, station, chip string, channel int) string {
	return filepath.Join(root,
		"Station_1__"+station+"_Summary",
		"Chip_"+chip,
		"S_curve",
		fmt.Sprintf("Ch_%d_offset_0_Chip_%s.txt", channel, chip))
}

type sensorSweep struct {
	sensor string
	v, i   []float64
}

// sweepText renders sensor sweeps in the SiPM CSV layout with a comment
// preamble.
func sweepText(sensors ...sensorSweep) string {
	var b strings.Builder
	b.WriteString("# test bench export\n")
	b.WriteString("SiPM,Step,V,I,I_err\n")
	for _, s := range sensors {
		for k := range s.v {
			fmt.Fprintf(&b, "%s,%d,%.17g,%.17g,0.001\n", s.sensor, k, s.v[k], s.i[k])
		}
	}

	return b.String()
}
