package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "register"}
	cmd.Flags().Int64("balance", 0, "")
	return cmd
}

func TestOpeningBalance(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		fallback int64
		want     int64
	}{
		{"flag not given uses fallback", nil, 3000, 3000},
		{"explicit flag wins", []string{"--balance", "500"}, 3000, 500},
		{"explicit zero wins over fallback", []string{"--balance", "0"}, 3000, 0},
		{"no flag no fallback", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newBalanceCmd()
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.args, err)
			}
			if got := openingBalance(cmd, tt.fallback); got != tt.want {
				t.Errorf("openingBalance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"5000", 5000, false},
		{"５０００", 5000, false},
		{"-200", -200, false},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseAmount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
