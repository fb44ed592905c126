package batch

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var asciiLetter = regexp.MustCompile(`[a-zA-Z]`)

// FirstLineClassifier rejects a record whose first line contains an ASCII
// letter or which is empty. Scan files start with a numeric seed row.
func FirstLineClassifier(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedRecord, path, err)
		}

		return fmt.Errorf("%w: %s: empty file", ErrMalformedRecord, path)
	}

	if asciiLetter.MatchString(sc.Text()) {
		return fmt.Errorf("%w: %s: letters in first line", ErrMalformedRecord, path)
	}

	return nil
}

// HeaderClassifier returns a classifier for files with free-form preamble
// lines before a header line containing token. The record is rejected if
// no such header exists or if the first non-empty line after it is not a
// row of comma separated numbers.
func HeaderClassifier(token string) func(path string) error {
	return func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		found := false
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if !found {
				found = strings.Contains(line, token)
				continue
			}

			if line == "" {
				continue
			}

			if !numericRow(line) {
				return fmt.Errorf("%w: %s: non-numeric row after header", ErrMalformedRecord, path)
			}

			return nil
		}

		if err := sc.Err(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedRecord, path, err)
		}

		if !found {
			return fmt.Errorf("%w: %s: no %q header", ErrMalformedRecord, path, token)
		}

		return fmt.Errorf("%w: %s: no data after header", ErrMalformedRecord, path)
	}
}

func numericRow(line string) bool {
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return false
		}
	}

	return true
}
