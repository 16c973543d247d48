package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pokerdesk/club_ledger/internal/export"
	"github.com/pokerdesk/club_ledger/internal/ranking"
)

func init() {
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(exportCmd)

	rankingCmd.Flags().String("board", "profit", "board to show: profit, winrate, maxwin or streak")
	exportCmd.Flags().StringP("out", "o", "ranking.xlsx", "output workbook path")
}

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show a leaderboard computed from the settled session history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		board, _ := cmd.Flags().GetString("board")

		var rows []ranking.Row
		switch board {
		case "profit":
			rows, err = a.rankings.Rows(cmd.Context())
		case "winrate":
			rows, err = a.rankings.WinRateBoard(cmd.Context())
		case "maxwin":
			rows, err = a.rankings.MaxWinBoard(cmd.Context())
		case "streak":
			rows, err = a.rankings.StreakBoard(cmd.Context())
		default:
			return fmt.Errorf("unknown board %q", board)
		}
		if err != nil {
			return err
		}

		for i, row := range rows {
			fmt.Printf("%3d  %-24s profit %+10d  games %3d  winrate %5.1f%%  maxwin %8d  streak %d/%d\n",
				i+1, row.PlayerName, row.TotalProfit, row.TotalGames, row.WinRate,
				row.MaxWin, row.CurrentStreak, row.MaxWinStreak)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the leaderboards as an Excel workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		out, _ := cmd.Flags().GetString("out")

		rows, err := a.rankings.Rows(cmd.Context())
		if err != nil {
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()

		opts := ranking.Options{
			MinGames:    a.cfg.RankingMinGames,
			MaxWinFloor: a.cfg.RankingMaxWinFloor,
			MinStreak:   a.cfg.RankingMinStreak,
			BoardSize:   a.cfg.RankingBoardSize,
		}
		if err := export.RankingWorkbook(f, rows, opts); err != nil {
			return err
		}

		fmt.Printf("wrote %s (%d players)\n", out, len(rows))
		return nil
	},
}
