package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pokerdesk/club_ledger/internal/ranking"
)

// RankingWorkbook writes the primary ranking and the three leaderboards as
// one sheet each.
func RankingWorkbook(w io.Writer, rows []ranking.Row, opts ranking.Options) error {
	opts = opts.Normalize()

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Ranking", rows); err != nil {
		return err
	}
	if err := writeSheet(f, "Win Rate", ranking.WinRateBoard(rows, opts)); err != nil {
		return err
	}
	if err := writeSheet(f, "Max Win", ranking.MaxWinBoard(rows, opts)); err != nil {
		return err
	}
	if err := writeSheet(f, "Streaks", ranking.StreakBoard(rows, opts)); err != nil {
		return err
	}

	// excelize starts every workbook with "Sheet1"; drop it once the real
	// sheets exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

var header = []interface{}{
	"Rank", "Player", "Total Profit", "Games", "Win Rate %", "Avg Profit",
	"Max Win", "Best Streak", "Current Streak", "Last Game",
}

func writeSheet(f *excelize.File, name string, rows []ranking.Row) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header on %s: %w", name, err)
	}

	for i, row := range rows {
		lastGame := ""
		if !row.LastGameDate.IsZero() {
			lastGame = row.LastGameDate.Format("2006-01-02")
		}

		values := []interface{}{
			i + 1,
			row.PlayerName,
			row.TotalProfit,
			row.TotalGames,
			fmt.Sprintf("%.1f", row.WinRate),
			fmt.Sprintf("%.1f", row.AverageProfit),
			row.MaxWin,
			row.MaxWinStreak,
			row.CurrentStreak,
			lastGame,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell on %s: %w", name, err)
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row on %s: %w", name, err)
		}
	}

	return nil
}
