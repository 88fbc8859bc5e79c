package parser

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "클린 코드", "클린 코드"},
		{"slashes", `a/b\c`, "a_b_c"},
		{"colon and star", "Go: 100*", "Go_ 100_"},
		{"question and quote", `why?"`, "why__"},
		{"angle brackets and pipe", "<a>|<b>", "_a___b_"},
		{"newlines", "line1\nline2\r", "line1_line2_"},
		{"surrounding space", "  title  ", "title"},
		{"all forbidden", "\\/:*?\"<>|\n\r", "___________"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.in)
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.ContainsAny(got, "\\/:*?\"<>|\n\r") {
				t.Errorf("output %q still contains forbidden characters", got)
			}
		})
	}
}

func TestNormalizeForCompare(t *testing.T) {
	tests := []struct {
		name string
		s1   string
		s2   string
	}{
		{"case", "Clean Code", "clean code"},
		{"surrounding space", "  클린 코드  ", "클린 코드"},
		{"embedded newlines", "클린\n코드", "클린코드"},
		{"carriage returns", "클린\r\n 코드", "클린 코드\n"},
		{"mixed", "  Clean\nCode ", "cleancode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if NormalizeForCompare(tt.s1) != NormalizeForCompare(tt.s2) {
				t.Errorf("normalize(%q) = %q, normalize(%q) = %q; want equal",
					tt.s1, NormalizeForCompare(tt.s1), tt.s2, NormalizeForCompare(tt.s2))
			}
		})
	}

	if NormalizeForCompare("클린 코드") == NormalizeForCompare("다른 책") {
		t.Error("distinct titles must not normalize to the same key")
	}
}
