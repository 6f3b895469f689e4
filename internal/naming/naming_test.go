package naming

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantSanitized string
		wantReason    Reason
	}{
		{
			name:          "simple name",
			input:         "Photos",
			wantSanitized: "Photos",
		},
		{
			name:          "inner whitespace collapsed",
			input:         "  My   Docs  ",
			wantSanitized: "My Docs",
		},
		{
			name:          "tabs collapsed to single space",
			input:         "tax\t\treturns",
			wantSanitized: "tax returns",
		},
		{
			name:          "minimum length",
			input:         "ab",
			wantSanitized: "ab",
		},
		{
			name:          "maximum length",
			input:         strings.Repeat("a", 255),
			wantSanitized: strings.Repeat("a", 255),
		},
		{
			name:       "empty",
			input:      "",
			wantReason: ReasonRequired,
		},
		{
			name:       "whitespace only",
			input:      "   ",
			wantReason: ReasonRequired,
		},
		{
			name:       "single character",
			input:      "a",
			wantReason: ReasonTooShort,
		},
		{
			name:       "single dot is too short",
			input:      ".",
			wantReason: ReasonTooShort,
		},
		{
			name:       "too long",
			input:      strings.Repeat("a", 256),
			wantReason: ReasonTooLong,
		},
		{
			name:       "reserved lowercase",
			input:      "con",
			wantReason: ReasonReserved,
		},
		{
			name:       "reserved uppercase",
			input:      "CON",
			wantReason: ReasonReserved,
		},
		{
			name:       "reserved mixed case",
			input:      "Nul",
			wantReason: ReasonReserved,
		},
		{
			name:       "reserved com port",
			input:      "com9",
			wantReason: ReasonReserved,
		},
		{
			name:       "reserved dotfile",
			input:      ".git",
			wantReason: ReasonReserved,
		},
		{
			name:       "reserved node_modules",
			input:      "node_modules",
			wantReason: ReasonReserved,
		},
		{
			name:       "forward slash",
			input:      "a/b",
			wantReason: ReasonIllegalCharacters,
		},
		{
			name:       "backslash",
			input:      `a\b`,
			wantReason: ReasonIllegalCharacters,
		},
		{
			name:       "colon",
			input:      "c: drive",
			wantReason: ReasonIllegalCharacters,
		},
		{
			name:       "wildcard",
			input:      "every*thing",
			wantReason: ReasonIllegalCharacters,
		},
		{
			name:       "angle brackets",
			input:      "<html>",
			wantReason: ReasonIllegalCharacters,
		},
		{
			name:       "control character",
			input:      "line\x01break",
			wantReason: ReasonIllegalCharacters,
		},
		{
			name:       "double dot only",
			input:      "..",
			wantReason: ReasonDotOnly,
		},
		{
			name:       "leading dot",
			input:      ".hidden",
			wantReason: ReasonEdgeDotsOrSpaces,
		},
		{
			name:       "trailing dot",
			input:      "archive.",
			wantReason: ReasonEdgeDotsOrSpaces,
		},
		{
			name:       "embedded traversal",
			input:      "a..b",
			wantReason: ReasonPathTraversal,
		},
		{
			name:          "dots allowed inside",
			input:         "report.v2.final",
			wantSanitized: "report.v2.final",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sanitized, err := Validate(tt.input)

			if tt.wantReason != "" {
				var nameErr *Error
				if !errors.As(err, &nameErr) {
					t.Fatalf("Validate(%q) expected *Error, got %v", tt.input, err)
				}
				if nameErr.Reason != tt.wantReason {
					t.Errorf("Validate(%q) reason = %v, want %v", tt.input, nameErr.Reason, tt.wantReason)
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate(%q) unexpected error: %v", tt.input, err)
			}
			if sanitized != tt.wantSanitized {
				t.Errorf("Validate(%q) = %q, want %q", tt.input, sanitized, tt.wantSanitized)
			}
		})
	}
}

// Validation must be deterministic: the same input always produces the
// same verdict and reason.
func TestValidateIdempotentRejection(t *testing.T) {
	inputs := []string{"", "a", "con", "a/b", "..", ".hidden", "a..b"}

	for _, input := range inputs {
		_, first := Validate(input)
		_, second := Validate(input)

		var firstErr, secondErr *Error
		if !errors.As(first, &firstErr) || !errors.As(second, &secondErr) {
			t.Fatalf("Validate(%q) expected consistent *Error, got %v / %v", input, first, second)
		}
		if firstErr.Reason != secondErr.Reason {
			t.Errorf("Validate(%q) reasons differ: %v vs %v", input, firstErr.Reason, secondErr.Reason)
		}
	}
}

func TestIsReserved(t *testing.T) {
	if !IsReserved("CON") {
		t.Error("IsReserved(CON) = false, want true")
	}
	if IsReserved("documents") {
		t.Error("IsReserved(documents) = true, want false")
	}
}
