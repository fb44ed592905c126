package ivcurve

import (
	"errors"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		token string
		want  Direction
	}{
		{"f", Forward},
		{"F", Forward},
		{"forward", Forward},
		{"r", Reverse},
		{"Reverse", Reverse},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.token)
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", tt.token, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDirection(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}

	if _, err := ParseDirection("x"); !errors.Is(err, ErrBadDirection) {
		t.Fatalf("err = %v, want ErrBadDirection", err)
	}
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "Forward" || Reverse.String() != "Reverse" {
		t.Fatalf("got %q %q", Forward, Reverse)
	}
	if Direction(7).String() != "Direction(7)" {
		t.Fatalf("got %q", Direction(7))
	}
}
