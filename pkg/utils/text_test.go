package utils

import "testing"

func TestNormalizeWidthNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"１０００", "1000"},
		{"50００", "5000"},
		{"2000", "2000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeWidthNumbers(tt.input); got != tt.want {
			t.Errorf("NormalizeWidthNumbers(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeKana(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"やまだ", "ヤマダ"},
		{"ヤマダ", "ヤマダ"},
		{"  すずき たろう ", "スズキ タロウ"},
		{"smith", "smith"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKana(tt.input); got != tt.want {
			t.Errorf("NormalizeKana(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
