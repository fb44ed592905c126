package record

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Default file patterns of the two analysers. A '*' also matches path
// separators.
const (
	ScanPattern       = "*Station*_Summary/Chip_*/S_curve/Ch_*_offset_*_Chip_*.txt"
	SingleScanPattern = "*Ch_?_offset_?_Chip_00?*"
	SweepPattern      = "*ARDU_*_dataframe.csv"
)

// Pattern is a compiled shell-style pattern matched against whole paths.
// '*' matches any run of characters including '/', '?' one character, and
// [...] a character class ([!...] negated). Paths are compared with
// forward slashes.
type Pattern struct {
	g glob.Glob
}

// CompilePattern compiles a shell-style pattern without separators, so
// '*' crosses directory boundaries.
func CompilePattern(pattern string) (Pattern, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return Pattern{}, fmt.Errorf("record: pattern %q: %w", pattern, err)
	}

	return Pattern{g: g}, nil
}

// Match reports whether path matches the pattern.
func (p Pattern) Match(path string) bool {
	return p.g.Match(filepath.ToSlash(path))
}

// Walk returns every regular file under root whose full path matches
// pattern, sorted.
func Walk(root, pattern string) ([]string, error) {
	p, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.Type().IsRegular() && p.Match(path) {
			out = append(out, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)

	return out, nil
}

// ReadList reads one path per line, skipping blank lines.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}

	return out, sc.Err()
}
