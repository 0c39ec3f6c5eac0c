package strata_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/strata"
)

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "drop p1 0\n", "drop p1 0\n", nil},
		{"escape sequence", "drop \x1b[31mp1 0", "drop [31mp1 0", nil},
		{"nul and bell", "undo\x00\x07", "undo", nil},
		{"tabs kept", "drop\tp1\t0", "drop\tp1\t0", nil},
		{"invalid utf8", "drop \xff", "", strata.ErrInvalidUTF8},
		{"too large", strings.Repeat("a", strata.MaxCommandSize+1), "", strata.ErrCommandTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strata.SanitizeCommand(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SanitizeCommand() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SanitizeCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}
