package batch

import (
	"errors"
	"io/fs"

	"github.com/cwbudde/algo-calib/fit"
)

// ErrMalformedRecord marks a record rejected during classification.
var ErrMalformedRecord = errors.New("batch: malformed record")

// Row is one output line of a result table.
type Row []string

// Job is one kind of calibration analysis.
type Job interface {
	// Name identifies the job in logs.
	Name() string
	// Header names the columns of every Row returned by Process.
	Header() []string
	// Classify returns an error wrapping ErrMalformedRecord when the record
	// at path cannot be analysed.
	Classify(path string) error
	// Process analyses one usable record.
	Process(path string) ([]Row, error)
}

// Kind is the coarse category of a per-record failure.
type Kind string

const (
	KindInsufficientData Kind = "insufficient_data"
	KindFitDivergence    Kind = "fit_divergence"
	KindMalformed        Kind = "malformed_record"
	KindIO               Kind = "io"
	KindOther            Kind = "other"
)

// KindOf classifies err.
func KindOf(err error) Kind {
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, fit.ErrInsufficientData):
		return KindInsufficientData
	case errors.Is(err, fit.ErrFitDivergence):
		return KindFitDivergence
	case errors.Is(err, ErrMalformedRecord):
		return KindMalformed
	case errors.As(err, &pathErr), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return KindIO
	default:
		return KindOther
	}
}

// Failure is a usable record whose processing failed.
type Failure struct {
	Path string
	Kind Kind
	Err  error
}

func (f Failure) Error() string {
	return f.Path + ": " + string(f.Kind) + ": " + f.Err.Error()
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Outcome is the result of a run. Malformed and Usable partition the input
// paths, both in input order. Rows are in the order of the usable records
// that produced them.
type Outcome struct {
	Header    []string
	Malformed []string
	Usable    []string
	Rows      []Row
	Failures  []Failure
}

// Processed returns the number of usable records that produced rows.
func (o Outcome) Processed() int {
	return len(o.Usable) - len(o.Failures)
}

// CountKind returns the number of failures of kind k.
func (o Outcome) CountKind(k Kind) int {
	n := 0
	for _, f := range o.Failures {
		if f.Kind == k {
			n++
		}
	}

	return n
}
