// Package record reads calibration measurement files and the metadata
// encoded in their paths.
package record

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-calib/batch"
)

// Unknown replaces a metadata field that could not be read from a path.
const Unknown = "unknown"

// Errors returned by the readers. Parse failures wrap
// batch.ErrMalformedRecord.
var (
	ErrMetadataParse  = errors.New("record: metadata not found in path")
	ErrHeaderNotFound = fmt.Errorf("record: header not found: %w", batch.ErrMalformedRecord)
	ErrMissingColumn  = fmt.Errorf("record: required column missing: %w", batch.ErrMalformedRecord)
	ErrBadRow         = fmt.Errorf("record: unparsable row: %w", batch.ErrMalformedRecord)
)
