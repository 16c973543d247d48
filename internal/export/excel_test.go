package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pokerdesk/club_ledger/internal/ranking"
)

func TestRankingWorkbook(t *testing.T) {
	rows := []ranking.Row{
		{
			PlayerID:      1,
			PlayerName:    "Aoki",
			TotalProfit:   45000,
			TotalGames:    5,
			WinRate:       80,
			AverageProfit: 9000,
			MaxWin:        32000,
			MaxWinStreak:  4,
			CurrentStreak: 2,
			LastGameDate:  time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC),
		},
		{
			PlayerID:    2,
			PlayerName:  "Baba",
			TotalProfit: -12000,
			TotalGames:  4,
			WinRate:     25,
			MaxWin:      3000,
		},
	}

	var buf bytes.Buffer
	if err := RankingWorkbook(&buf, rows, ranking.Options{}); err != nil {
		t.Fatalf("RankingWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	wantSheets := []string{"Ranking", "Win Rate", "Max Win", "Streaks"}
	sheets := f.GetSheetList()
	if len(sheets) != len(wantSheets) {
		t.Fatalf("sheets = %v, want %v", sheets, wantSheets)
	}
	for _, name := range wantSheets {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			t.Errorf("missing sheet %q", name)
		}
	}

	name, err := f.GetCellValue("Ranking", "B2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if name != "Aoki" {
		t.Errorf("Ranking!B2 = %q, want %q", name, "Aoki")
	}

	profit, err := f.GetCellValue("Ranking", "C3")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if profit != "-12000" {
		t.Errorf("Ranking!C3 = %q, want %q", profit, "-12000")
	}

	lastGame, err := f.GetCellValue("Ranking", "J2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if lastGame != "2025-06-10" {
		t.Errorf("Ranking!J2 = %q, want %q", lastGame, "2025-06-10")
	}

	// Baba's 3000 max win is under the default 30000 floor.
	maxWinName, err := f.GetCellValue("Max Win", "B2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if maxWinName != "Aoki" {
		t.Errorf("Max Win!B2 = %q, want %q", maxWinName, "Aoki")
	}
	under, err := f.GetCellValue("Max Win", "B3")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if under != "" {
		t.Errorf("Max Win!B3 = %q, want empty", under)
	}
}

func TestRankingWorkbook_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	if err := RankingWorkbook(&buf, nil, ranking.Options{}); err != nil {
		t.Fatalf("RankingWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue("Ranking", "A1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if header != "Rank" {
		t.Errorf("Ranking!A1 = %q, want %q", header, "Rank")
	}
}
