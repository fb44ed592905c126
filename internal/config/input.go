package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-calib/internal/record"
)

// ErrNoInput is returned when no input path is configured.
var ErrNoInput = errors.New("config: no input path")

// Input is how an input path is analysed.
type Input int

const (
	// InputSingle analyses one record.
	InputSingle Input = iota
	// InputDirectory walks a directory for records.
	InputDirectory
	// InputList reads record paths from a list file.
	InputList
)

func (i Input) String() string {
	switch i {
	case InputSingle:
		return "single"
	case InputDirectory:
		return "directory"
	case InputList:
		return "list"
	default:
		return fmt.Sprintf("Input(%d)", int(i))
	}
}

// DetectInput classifies path: a directory is walked, a file matching
// singlePattern is analysed alone, and any other file is a list of paths.
func DetectInput(path, singlePattern string) (Input, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("config: input: %w", err)
	}

	if st.IsDir() {
		return InputDirectory, nil
	}

	p, err := record.CompilePattern(singlePattern)
	if err != nil {
		return 0, fmt.Errorf("%w: single pattern: %w", ErrInvalidConfig, err)
	}

	if p.Match(path) {
		return InputSingle, nil
	}

	return InputList, nil
}

// ResolveInput applies the configured mode to path. Mode single forces a
// single-record analysis of a file; mode batch forces directory or list
// processing; mode auto uses DetectInput with singlePattern.
func (c Config) ResolveInput(path, singlePattern string) (Input, error) {
	if path == "" {
		return 0, ErrNoInput
	}

	switch c.Mode {
	case ModeSingle:
		st, err := os.Stat(path)
		if err != nil {
			return 0, fmt.Errorf("config: input: %w", err)
		}

		if st.IsDir() {
			return 0, fmt.Errorf("%w: mode single needs a file, %s is a directory", ErrInvalidConfig, path)
		}

		return InputSingle, nil
	case ModeBatch:
		st, err := os.Stat(path)
		if err != nil {
			return 0, fmt.Errorf("config: input: %w", err)
		}

		if st.IsDir() {
			return InputDirectory, nil
		}

		return InputList, nil
	default:
		return DetectInput(path, singlePattern)
	}
}
