package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-calib/batch"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(b)
}

func TestFloat(t *testing.T) {
	assert.Equal(t, "1000", Float(1000))
	assert.Equal(t, "120.53412", Float(120.53412))
	assert.Equal(t, "-0.5", Float(-0.5))
	assert.Equal(t, "1e-09", Float(1e-9))
}

func TestWriteLines(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "list.txt")
	require.NoError(t, WriteLines(path, []string{"a.txt", "b.txt"}))
	assert.Equal(t, "a.txt\nb.txt\n", readFile(t, path))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, WriteLines(empty, nil))
	assert.Equal(t, "", readFile(t, empty))
}

func TestWriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.tsv")

	err := WriteTable(path, '\t', []string{"Chip", "Value"}, []batch.Row{
		{"004", "1.5"},
		{"005", "2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Chip\tValue\n004\t1.5\n005\t2\n", readFile(t, path))
}

func TestWriteTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")

	require.NoError(t, WriteTable(path, ',', []string{"SiPM", "V_bd", "V_bd_std"}, []batch.Row{{"1", "30.1", "2.5"}}))
	assert.Equal(t, "SiPM,V_bd,V_bd_std\n1,30.1,2.5\n", readFile(t, path))
}

func TestWriteFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.tsv")

	err := WriteFailures(path, []batch.Failure{
		{Path: "a.txt", Kind: batch.KindFitDivergence, Err: errors.New("lsq: singular")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Path\tKind\tError\na.txt\tfit_divergence\tlsq: singular\n", readFile(t, path))
}

func TestWriteTableBadDir(t *testing.T) {
	err := WriteTable(filepath.Join(t.TempDir(), "missing", "t.tsv"), '\t', []string{"a"}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
