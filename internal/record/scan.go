package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-calib/measure/transition"
)

var (
	scanChip    = regexp.MustCompile(`.+Chip_(.+?)\.txt`)
	scanChannel = regexp.MustCompile(`.+Ch_(.+?)_.+`)
	scanStation = regexp.MustCompile(`Station_1__(.+?)_Summary`)
)

// ScanInfo identifies the channel a scan file belongs to.
type ScanInfo struct {
	Station string
	Chip    string
	Channel string
}

// ParseScanInfo extracts station, chip and channel from a scan file path.
// Fields that do not match are set to Unknown and ErrMetadataParse is
// returned together with the partially filled ScanInfo.
func ParseScanInfo(path string) (ScanInfo, error) {
	var missing []string

	field := func(re *regexp.Regexp, name string) string {
		m := re.FindStringSubmatch(path)
		if m == nil {
			missing = append(missing, name)
			return Unknown
		}

		return m[1]
	}

	info := ScanInfo{
		Station: field(scanStation, "station"),
		Chip:    field(scanChip, "chip"),
		Channel: field(scanChannel, "channel"),
	}

	if len(missing) > 0 {
		return info, fmt.Errorf("%w: %s: %s", ErrMetadataParse, path, strings.Join(missing, ", "))
	}

	return info, nil
}

// ReadScan parses a tab separated scan file. The first row holds the
// amplitude, transition point and width used to seed the erf fit; the
// second row is skipped; every further row is an x, y pair. Blank lines
// are ignored and the width is stored as its absolute value.
func ReadScan(path string) (transition.Scan, error) {
	f, err := os.Open(path)
	if err != nil {
		return transition.Scan{}, err
	}
	defer f.Close()

	return parseScan(f, path)
}

func parseScan(r io.Reader, name string) (transition.Scan, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var scan transition.Scan

	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return transition.Scan{}, fmt.Errorf("%w: %s: %w", ErrBadRow, name, err)
		}

		switch {
		case row == 0:
			vals, err := floatsN(rec, 3)
			if err != nil {
				return transition.Scan{}, fmt.Errorf("%w: %s: seed row: %w", ErrBadRow, name, err)
			}

			scan.Seed = transition.Seed{Amplitude: vals[0], Transition: vals[1], Width: math.Abs(vals[2])}
		case row == 1:
			continue
		default:
			vals, err := floatsN(rec, 2)
			if err != nil {
				return transition.Scan{}, fmt.Errorf("%w: %s: row %d: %w", ErrBadRow, name, row+1, err)
			}

			scan.X = append(scan.X, vals[0])
			scan.Y = append(scan.Y, vals[1])
		}
	}

	return scan, nil
}

// floatsN parses the first n fields of rec.
func floatsN(rec []string, n int) ([]float64, error) {
	if len(rec) < n {
		return nil, fmt.Errorf("want %d fields, got %d", n, len(rec))
	}

	out := make([]float64, n)
	for k := range n {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[k]), 64)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}

	return out, nil
}
