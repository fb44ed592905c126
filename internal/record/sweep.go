package record

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-calib/measure/ivcurve"
)

// HeaderToken marks the header row of a sweep file.
const HeaderToken = "SiPM"

var (
	sweepArduino   = regexp.MustCompile(`.*ARDU_(.+?)_.+`)
	sweepDirection = regexp.MustCompile(`.+[0-9]_(.+?)_.+`)
	sweepTest      = regexp.MustCompile(`.*Test_(.+?)_.+`)
	sweepTemp      = regexp.MustCompile(`.+_(.+?)_dataframe.+`)
)

// SweepInfo identifies the board, test and conditions of a sweep file.
// Direction is the raw file-name token.
type SweepInfo struct {
	Arduino     string
	Direction   string
	Test        string
	Temperature string
}

// Dir maps the direction token: "f" is forward, anything else reverse.
func (s SweepInfo) Dir() ivcurve.Direction {
	if s.Direction == "f" {
		return ivcurve.Forward
	}

	return ivcurve.Reverse
}

// ParseSweepInfo extracts the metadata from the base name of a sweep file,
// filling unmatched fields with Unknown and returning ErrMetadataParse.
func ParseSweepInfo(path string) (SweepInfo, error) {
	base := filepath.Base(path)

	var missing []string

	field := func(re *regexp.Regexp, name string) string {
		m := re.FindStringSubmatch(base)
		if m == nil {
			missing = append(missing, name)
			return Unknown
		}

		return m[1]
	}

	info := SweepInfo{
		Arduino:     field(sweepArduino, "arduino"),
		Direction:   field(sweepDirection, "direction"),
		Test:        field(sweepTest, "test"),
		Temperature: field(sweepTemp, "temperature"),
	}

	if len(missing) > 0 {
		return info, fmt.Errorf("%w: %s: %s", ErrMetadataParse, path, strings.Join(missing, ", "))
	}

	return info, nil
}

type sweepRow struct {
	sensor string
	key    float64
	step   float64
	v, i   float64
	ierr   float64
}

// ReadSweeps parses a comma separated sweep file. Lines before the first
// line containing HeaderToken are skipped. Rows are sorted by sensor and
// step and returned as one Sweep per sensor, all with direction dir.
func ReadSweeps(path string, dir ivcurve.Direction) ([]ivcurve.Sweep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseSweeps(f, path, dir)
}

func parseSweeps(r io.Reader, name string, dir ivcurve.Direction) ([]ivcurve.Sweep, error) {
	br := bufio.NewReader(r)

	var header string
	for {
		line, err := br.ReadString('\n')
		if strings.Contains(line, HeaderToken) {
			header = line
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %s: no %q line", ErrHeaderNotFound, name, HeaderToken)
		}
	}

	cols, err := csv.NewReader(strings.NewReader(header)).Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: header: %w", ErrBadRow, name, err)
	}

	idx, err := columnIndex(cols, "SiPM", "Step", "V", "I")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}

	errCol := -1
	if k, err := columnIndex(cols, "I_err"); err == nil {
		errCol = k[0]
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	var rows []sweepRow
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadRow, name, err)
		}

		row, err := parseSweepRow(rec, idx, errCol)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: data row %d: %w", ErrBadRow, name, n, err)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].key != rows[b].key {
			return rows[a].key < rows[b].key
		}
		if rows[a].sensor != rows[b].sensor {
			return rows[a].sensor < rows[b].sensor
		}

		return rows[a].step < rows[b].step
	})

	var sweeps []ivcurve.Sweep
	for _, row := range rows {
		if len(sweeps) == 0 || sweeps[len(sweeps)-1].Sensor != row.sensor {
			sweeps = append(sweeps, ivcurve.Sweep{Sensor: row.sensor, Direction: dir})
		}

		s := &sweeps[len(sweeps)-1]
		s.V = append(s.V, row.v)
		s.I = append(s.I, row.i)
		s.IErr = append(s.IErr, row.ierr)
	}

	return sweeps, nil
}

func columnIndex(cols []string, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for n, name := range names {
		out[n] = -1
		for k, c := range cols {
			if strings.TrimSpace(c) == name {
				out[n] = k
				break
			}
		}

		if out[n] < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	return out, nil
}

// parseSweepRow reads SiPM, Step, V, I (indices in idx) and optionally I_err.
func parseSweepRow(rec []string, idx []int, errCol int) (sweepRow, error) {
	get := func(k int) (string, error) {
		if k >= len(rec) {
			return "", fmt.Errorf("missing field %d", k)
		}

		return strings.TrimSpace(rec[k]), nil
	}

	num := func(k int) (float64, error) {
		s, err := get(k)
		if err != nil {
			return 0, err
		}

		return strconv.ParseFloat(s, 64)
	}

	sensor, err := get(idx[0])
	if err != nil {
		return sweepRow{}, err
	}

	row := sweepRow{sensor: sensor}

	// Numeric sensor ids sort numerically, others after them by name.
	if row.key, err = strconv.ParseFloat(sensor, 64); err != nil {
		row.key = math.Inf(1)
	} else {
		row.sensor = strconv.FormatFloat(row.key, 'f', -1, 64)
	}

	if row.step, err = num(idx[1]); err != nil {
		return sweepRow{}, err
	}

	if row.v, err = num(idx[2]); err != nil {
		return sweepRow{}, err
	}

	if row.i, err = num(idx[3]); err != nil {
		return sweepRow{}, err
	}

	if errCol >= 0 {
		if row.ierr, err = num(errCol); err != nil {
			return sweepRow{}, err
		}
	}

	return row, nil
}
