package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a long-lived process reacting to settlements",
	Long: `Keeps the process alive with an outcome subscription: every settled
session invalidates the cached ranking snapshot so the next read recomputes.
Useful when clubledger is embedded next to a frontend that calls the services
in-process.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		events, unsubscribe := a.hub.Subscribe()
		defer unsubscribe()

		go func() {
			for outcome := range events {
				a.log.Info("settlement observed",
					"player_id", outcome.PlayerID,
					"profit", outcome.Profit(),
				)
				a.rankings.Invalidate(cmd.Context())
			}
		}()

		a.log.Info("Club ledger started", "env", a.cfg.AppEnv)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		a.log.Info("Shutting down gracefully...")
		return nil
	},
}
