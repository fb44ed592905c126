package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{ScanPattern, "/d/Station_1__11_Summary/Chip_004/S_curve/Ch_7_offset_0_Chip_004.txt", true},
		{ScanPattern, "/d/Station_1__11_Summary/Chip_004/other/Ch_7_offset_0_Chip_004.txt", false},
		{ScanPattern, "/d/Station_1__11_Summary/Chip_004/S_curve/Ch_7_offset_0_Chip_004.csv", false},
		{SingleScanPattern, "/tmp/Ch_7_offset_0_Chip_004.txt", true},
		{SingleScanPattern, "/tmp/Ch_17_offset_0_Chip_004.txt", false},
		{SweepPattern, "runs/ARDU_3_Test_2_f_25C_dataframe.csv", true},
		{SweepPattern, "runs/ARDU_3_Test_2_f_25C_summary.csv", false},
		{"file[0-9].txt", "file7.txt", true},
		{"file[!0-9].txt", "file7.txt", false},
		{"file[!0-9].txt", "fileX.txt", true},
		{"a+b(c).txt", "a+b(c).txt", true},
		{"*/deep/*.txt", "top/mid/deep/x/y.txt", true},
	}

	for _, tt := range tests {
		p, err := CompilePattern(tt.pattern)
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Match(tt.path), "%s ~ %s", tt.pattern, tt.path)
	}
}

func TestCompilePatternRejectsInvertedRange(t *testing.T) {
	_, err := CompilePattern("file[z-a].txt")
	require.Error(t, err)
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"Station_1__2_Summary/Chip_002/S_curve/Ch_1_offset_0_Chip_002.txt",
		"Station_1__1_Summary/Chip_001/S_curve/Ch_0_offset_0_Chip_001.txt",
		"Station_1__1_Summary/Chip_001/S_curve/notes.txt",
		"Station_1__1_Summary/Chip_001/Ch_0_offset_0_Chip_001.txt",
	}
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("1\t2\t3\n"), 0o600))
	}

	got, err := Walk(root, ScanPattern)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, filepath.FromSlash(files[1])),
		filepath.Join(root, filepath.FromSlash(files[0])),
	}, got)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "missing"), ScanPattern)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("a.txt\n\n  b.txt \nc.txt"), 0o600))

	got, err := ReadList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, got)
}
