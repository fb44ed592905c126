package batch

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/algo-calib/fit"
)

func TestKindOf(t *testing.T) {
	_, openErr := os.Open("/does/not/exist")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"insufficient", fmt.Errorf("scan: %w", fit.ErrInsufficientData), KindInsufficientData},
		{"divergence", fmt.Errorf("erf: %w", fit.ErrFitDivergence), KindFitDivergence},
		{"malformed", fmt.Errorf("%w: letters", ErrMalformedRecord), KindMalformed},
		{"open", openErr, KindIO},
		{"other", errors.New("boom"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestFailureWrapsCause(t *testing.T) {
	f := Failure{Path: "a.txt", Kind: KindFitDivergence, Err: fit.ErrFitDivergence}

	assert.ErrorIs(t, f, fit.ErrFitDivergence)
	assert.Contains(t, f.Error(), "a.txt")
	assert.Contains(t, f.Error(), "fit_divergence")
}

func TestOutcomeCounts(t *testing.T) {
	out := Outcome{
		Usable: []string{"a", "b", "c", "d"},
		Failures: []Failure{
			{Path: "b", Kind: KindFitDivergence, Err: fit.ErrFitDivergence},
			{Path: "d", Kind: KindInsufficientData, Err: fit.ErrInsufficientData},
		},
	}

	assert.Equal(t, 2, out.Processed())
	assert.Equal(t, 1, out.CountKind(KindFitDivergence))
	assert.Equal(t, 0, out.CountKind(KindIO))
}
