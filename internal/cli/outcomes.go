package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokerdesk/club_ledger/internal/models"
)

func init() {
	rootCmd.AddCommand(importOutcomesCmd)
}

var importOutcomesCmd = &cobra.Command{
	Use:   "import-outcomes FILE",
	Short: "Bulk-load historical session outcomes from a JSON file",
	Long: `Loads an array of session outcome facts exported from a previous system.
Rows are written in chunks of 500 per batch. Facts that fail validation are
skipped with a warning rather than aborting the import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var outcomes []models.SessionOutcome
		if err := json.Unmarshal(data, &outcomes); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		valid := make([]models.SessionOutcome, 0, len(outcomes))
		skipped := 0
		for _, o := range outcomes {
			if !o.Valid() {
				skipped++
				a.log.Warn("skipping malformed outcome", "player_id", o.PlayerID, "buy_in", o.BuyIn)
				continue
			}
			o.ID = 0 // never trust imported primary keys
			valid = append(valid, o)
		}

		if err := a.outcomes.Import(cmd.Context(), valid); err != nil {
			return err
		}

		a.rankings.Invalidate(cmd.Context())

		fmt.Printf("imported %d outcomes (%d skipped)\n", len(valid), skipped)
		return nil
	},
}
