package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pokerdesk/club_ledger/internal/config"
	"github.com/pokerdesk/club_ledger/internal/security"
)

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().Uint("operator-id", 0, "operator id to embed in the token")
	tokenCmd.Flags().String("name", "", "operator name recorded as CreatedBy on transactions")
	tokenCmd.MarkFlagRequired("name")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an operator token for use with --token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only the secret is needed; skip the full app bootstrap.
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		operatorID, _ := cmd.Flags().GetUint("operator-id")
		name, _ := cmd.Flags().GetString("name")

		token, err := security.GenerateActorToken(operatorID, name, cfg.JWTSecret)
		if err != nil {
			return fmt.Errorf("failed to mint token: %w", err)
		}

		fmt.Println(token)
		return nil
	},
}
