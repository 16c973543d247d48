package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(historyCmd)

	adjustCmd.Flags().String("reason", "", "reason recorded on the transaction (required)")
	adjustCmd.Flags().String("dedup-key", "", "idempotency key; reuse when retrying a failed post")
	historyCmd.Flags().Int("limit", 20, "number of transactions to show")
}

var adjustCmd = &cobra.Command{
	Use:   "adjust PLAYER_ID NEW_BALANCE",
	Short: "Set a player's balance, recording the delta as deposit or withdrawal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		actor, err := a.actor()
		if err != nil {
			return err
		}

		playerID, err := parsePlayerID(args[0])
		if err != nil {
			return err
		}
		newBalance, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		reason, _ := cmd.Flags().GetString("reason")
		dedupKey, _ := cmd.Flags().GetString("dedup-key")

		if dedupKey != "" {
			posted, err := a.ledger.ApplyAdjustmentWithKey(cmd.Context(), playerID, newBalance, reason, actor, dedupKey)
			if err != nil {
				return err
			}
			fmt.Printf("%s %+d -> balance %d (tx %d)\n", posted.Type, posted.Amount, posted.BalanceAfter, posted.ID)
			return nil
		}

		posted, err := a.ledger.ApplyAdjustment(cmd.Context(), playerID, newBalance, reason, actor)
		if err != nil {
			return err
		}
		fmt.Printf("%s %+d -> balance %d (tx %d)\n", posted.Type, posted.Amount, posted.BalanceAfter, posted.ID)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history PLAYER_ID",
	Short: "Show a player's recent ledger transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		playerID, err := parsePlayerID(args[0])
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		txns, err := a.ledger.GetHistory(cmd.Context(), playerID, limit)
		if err != nil {
			return err
		}

		for _, t := range txns {
			fmt.Printf("%s  %-18s %+10d  %10d -> %-10d %s (%s)\n",
				t.CreatedAt.Format("2006-01-02 15:04"),
				t.Type, t.Amount, t.BalanceBefore, t.BalanceAfter, t.Description, t.CreatedBy)
		}
		return nil
	},
}
