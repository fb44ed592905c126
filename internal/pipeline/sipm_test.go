package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-calib/batch"
	"github.com/cwbudde/algo-calib/internal/record"
	"github.com/cwbudde/algo-calib/internal/testutil"
	"github.com/cwbudde/algo-calib/measure/ivcurve"
)

func newSiPMJob(outDir string, plots bool) *SiPMJob {
	return &SiPMJob{
		StartVoltage:  ivcurve.DefaultStartVoltage,
		PeakHalfWidth: ivcurve.DefaultPeakHalfWidth,
		Workers:       2,
		OutputDir:     outDir,
		Plots:         plots,
	}
}

func forwardFile(t *testing.T, dir string) string {
	v := testutil.Grid(0, 0.05, 60)

	return writeFile(t, filepath.Join(dir, "ARDU_3_Test_2_f_25C_dataframe.csv"), sweepText(
		sensorSweep{"2", v, testutil.LinearSweep(v, 40, -60)},
		sensorSweep{"1", v, testutil.LinearSweep(v, 50, -70)},
	))
}

func reverseFile(t *testing.T, dir string) string {
	v := testutil.Grid(20, 0.1, 201)

	return writeFile(t, filepath.Join(dir, "ARDU_3_Test_2_r_25C_dataframe.csv"), sweepText(
		sensorSweep{"1", v, testutil.BreakdownSweep(v, 1e-9, 0.05, 1, 30, 2.5)},
	))
}

func TestSiPMForwardFile(t *testing.T) {
	outDir := t.TempDir()
	path := forwardFile(t, t.TempDir())

	rep, err := newSiPMJob(outDir, true).Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, ivcurve.Forward, rep.Direction)
	require.Len(t, rep.Sensors, 2)
	assert.Equal(t, "1", rep.Sensors[0].Sensor)
	assert.InDelta(t, 20, rep.Sensors[0].Value, 1e-9)
	assert.InDelta(t, 0.6, rep.Sensors[0].Std, 1e-9)
	assert.InDelta(t, 25, rep.Sensors[1].Value, 1e-9)

	table := filepath.Join(outDir, "Arduino3_Test2_Forward_results.csv")
	b, err := os.ReadFile(table)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "SiPM,R_quenching,R_quenching_std\n1,"))

	assert.FileExists(t, filepath.Join(outDir, "Arduino3_Test2_Forward_SiPM1.pdf"))
	assert.FileExists(t, filepath.Join(outDir, "Arduino3_Test2_Forward_SiPM2.pdf"))
	assert.Len(t, rep.Files, 3)
	assert.Equal(t, table, rep.Files[0])
}

func TestSiPMReverseFile(t *testing.T) {
	outDir := t.TempDir()
	path := reverseFile(t, t.TempDir())

	rows, err := newSiPMJob(outDir, false).Process(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, batch.Row{"3", "2", "25C", "Reverse", "1"}, rows[0][:5])
	assert.InDelta(t, 30, parseFloat(t, rows[0][5]), 0.05)

	assert.FileExists(t, filepath.Join(outDir, "Arduino3_Test2_Reverse_results.csv"))
	assert.NoFileExists(t, filepath.Join(outDir, "Arduino3_Test2_Reverse_SiPM1.pdf"))
}

func TestSiPMSensorFailureKeepsOthers(t *testing.T) {
	v := testutil.Grid(0, 0.05, 60)
	path := writeFile(t, filepath.Join(t.TempDir(), "ARDU_1_Test_1_f_20C_dataframe.csv"), sweepText(
		sensorSweep{"1", v, testutil.LinearSweep(v, 50, -70)},
		sensorSweep{"2", []float64{0, 1}, []float64{0, 1}},
	))

	rep, err := newSiPMJob(t.TempDir(), false).Analyze(path)
	require.NoError(t, err)
	require.Len(t, rep.Sensors, 2)
	assert.NoError(t, rep.Sensors[0].Err)
	assert.Equal(t, batch.KindInsufficientData, batch.KindOf(rep.Sensors[1].Err))
}

func TestSiPMAllSensorsFail(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "ARDU_1_Test_1_f_20C_dataframe.csv"), sweepText(
		sensorSweep{"1", []float64{0, 1}, []float64{0, 1}},
	))

	_, err := newSiPMJob(t.TempDir(), false).Process(path)
	assert.Equal(t, batch.KindInsufficientData, batch.KindOf(err))
}

func TestSiPMBatch(t *testing.T) {
	in := t.TempDir()
	fwd := forwardFile(t, in)
	rev := reverseFile(t, in)
	bad := writeFile(t, filepath.Join(in, "ARDU_9_Test_1_f_20C_dataframe.csv"), "no table here\n")
	empty := writeFile(t, filepath.Join(in, "ARDU_8_Test_1_f_20C_dataframe.csv"), "SiPM,Step,V,I,I_err\n1,0,0,0,0\n")

	paths, err := record.Walk(in, record.SweepPattern)
	require.NoError(t, err)
	require.Equal(t, []string{fwd, rev, empty, bad}, paths)

	outDir := filepath.Join(t.TempDir(), "results")
	out := batch.Runner{}.Run(newSiPMJob(outDir, false), paths)

	assert.Equal(t, []string{bad}, out.Malformed)
	assert.Len(t, out.Rows, 3)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, empty, out.Failures[0].Path)
	assert.Equal(t, batch.KindInsufficientData, out.Failures[0].Kind)

	require.NoError(t, WriteOutcome(outDir, SiPMFiles, paths, out, true))
	assert.FileExists(t, filepath.Join(outDir, SiPMFiles.Table))
	assert.FileExists(t, filepath.Join(outDir, SiPMFiles.XLSX))
	assert.NoFileExists(t, filepath.Join(outDir, ClaroFiles.All))
}
