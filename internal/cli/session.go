package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seatCmd)
	rootCmd.AddCommand(rebuyCmd)
	rootCmd.AddCommand(settleCmd)
}

var seatCmd = &cobra.Command{
	Use:   "seat PLAYER_ID BUY_IN",
	Short: "Start a session for a player; prints the amount to bill, if any",
	Long: `Seats the player with the given buy-in. The charge mode decides how much
of the buy-in is covered by balance and how much must be billed: the billed
purchase amount is printed for out-of-band collection and never appears as a
ledger transaction. A buy-in of 0 holds the seat without charging.`,
	Args: cobra.ExactArgs(2),
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
		buyIn, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		res, err := a.settlement.StartSession(cmd.Context(), playerID, buyIn, actor)
		if err != nil {
			return err
		}

		fmt.Printf("session %d started: buy-in %d, balance %d\n", res.Session.ID, buyIn, res.BalanceAfter)
		if res.PurchaseAmount > 0 {
			fmt.Printf("bill purchase amount: %d\n", res.PurchaseAmount)
		}
		return nil
	},
}

var rebuyCmd = &cobra.Command{
	Use:   "rebuy PLAYER_ID AMOUNT",
	Short: "Add a mid-session buy-in to the player's active session",
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
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		res, err := a.settlement.AddBuyIn(cmd.Context(), playerID, amount, actor)
		if err != nil {
			return err
		}

		fmt.Printf("session %d: additional total %d, balance %d\n",
			res.Session.ID, res.Session.AdditionalBuyIns, res.BalanceAfter)
		if res.PurchaseAmount > 0 {
			fmt.Printf("bill purchase amount: %d\n", res.PurchaseAmount)
		}
		return nil
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle PLAYER_ID FINAL_STACK",
	Short: "Settle the player's active session at the counted final stack",
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
		finalStack, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		res, err := a.settlement.SettleSession(cmd.Context(), playerID, finalStack, actor)
		if err != nil {
			return err
		}

		// A new outcome fact makes the cached ranking snapshot stale.
		a.rankings.Invalidate(cmd.Context())

		fmt.Printf("session %d settled: final stack %d, profit %+d, balance %d\n",
			res.Session.ID, finalStack, res.Profit, res.BalanceAfter)
		if res.PurchaseAmount > 0 {
			fmt.Printf("bill purchase amount: %d\n", res.PurchaseAmount)
		}
		return nil
	},
}
