package security

import (
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Trims whitespace",
			input: "  table fee  ",
			want:  "table fee",
		},
		{
			name:  "Removes null bytes",
			input: "re\x00fund",
			want:  "refund",
		},
		{
			name:  "Plain text untouched",
			input: "monthly settlement",
			want:  "monthly settlement",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeString_LimitsLength(t *testing.T) {
	input := strings.Repeat("a", 2000)
	if got := SanitizeString(input); len(got) != 1000 {
		t.Errorf("len = %d, want 1000", len(got))
	}
}

func TestSanitizeFreeText_StripsHTML(t *testing.T) {
	got := SanitizeFreeText(`<script>alert(1)</script>chip top-up`)
	if got != "chip top-up" {
		t.Errorf("SanitizeFreeText() = %q, want %q", got, "chip top-up")
	}
}
