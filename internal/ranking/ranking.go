package ranking

import (
	"sort"
	"time"

	"github.com/pokerdesk/club_ledger/internal/models"
)

// Row is a derived per-player view. It has no persistence of its own and is
// recomputed on demand from the outcome facts.
type Row struct {
	PlayerID      uint      `json:"player_id"`
	PlayerName    string    `json:"player_name"`
	TotalProfit   int64     `json:"total_profit"`
	TotalGames    int       `json:"total_games"`
	WinRate       float64   `json:"win_rate"`
	AverageProfit float64   `json:"average_profit"`
	MaxWin        int64     `json:"max_win"`
	MaxWinStreak  int       `json:"max_win_streak"`
	CurrentStreak int       `json:"current_streak"`
	LastGameDate  time.Time `json:"last_game_date"`
}

// Options holds the leaderboard thresholds. Zero values fall back to the
// defaults via Normalize.
type Options struct {
	MinGames    int   // win-rate board: minimum games played
	MaxWinFloor int64 // max-win board: minimum qualifying single win
	MinStreak   int   // streak board: minimum qualifying streak
	BoardSize   int   // cap for the max-win and streak boards
}

const (
	DefaultMinGames    = 3
	DefaultMaxWinFloor = 30000
	DefaultMinStreak   = 3
	DefaultBoardSize   = 10
)

func (o Options) Normalize() Options {
	if o.MinGames <= 0 {
		o.MinGames = DefaultMinGames
	}
	if o.MaxWinFloor <= 0 {
		o.MaxWinFloor = DefaultMaxWinFloor
	}
	if o.MinStreak <= 0 {
		o.MinStreak = DefaultMinStreak
	}
	if o.BoardSize <= 0 {
		o.BoardSize = DefaultBoardSize
	}
	return o
}

// Compute aggregates the outcome facts into one row per player, sorted by
// total profit descending with stable order on ties. Roster players with no
// history get a zero row. Malformed facts are skipped. The function is pure:
// the same inputs always produce the same rows in the same order.
func Compute(facts []models.SessionOutcome, roster []models.Player) []Row {
	rows := make(map[uint]*Row)
	order := make([]uint, 0, len(roster))

	seed := func(playerID uint, name string) *Row {
		row, ok := rows[playerID]
		if !ok {
			row = &Row{PlayerID: playerID, PlayerName: name}
			rows[playerID] = row
			order = append(order, playerID)
		}
		return row
	}

	for i := range roster {
		seed(roster[i].ID, roster[i].DisplayName)
	}

	// Facts grouped per player, kept in input (chronological) order.
	perPlayer := make(map[uint][]models.SessionOutcome)
	for _, fact := range facts {
		if !fact.Valid() {
			continue
		}
		perPlayer[fact.PlayerID] = append(perPlayer[fact.PlayerID], fact)
		seed(fact.PlayerID, fact.PlayerName)
	}

	for _, playerID := range order {
		playerFacts := perPlayer[playerID]
		if len(playerFacts) == 0 {
			continue
		}

		sort.SliceStable(playerFacts, func(i, j int) bool {
			return playerFacts[i].CreatedAt.Before(playerFacts[j].CreatedAt)
		})

		row := rows[playerID]
		wins := 0
		streak := 0

		for _, fact := range playerFacts {
			profit := fact.Profit()

			row.TotalProfit += profit
			row.TotalGames++
			if profit > row.MaxWin {
				row.MaxWin = profit
			}
			if fact.CreatedAt.After(row.LastGameDate) {
				row.LastGameDate = fact.CreatedAt
			}

			if profit > 0 {
				wins++
				streak++
				if streak > row.MaxWinStreak {
					row.MaxWinStreak = streak
				}
			} else {
				streak = 0
			}
		}

		row.CurrentStreak = streak
		row.WinRate = 100 * float64(wins) / float64(row.TotalGames)
		row.AverageProfit = float64(row.TotalProfit) / float64(row.TotalGames)
	}

	result := make([]Row, 0, len(order))
	for _, playerID := range order {
		result = append(result, *rows[playerID])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalProfit > result[j].TotalProfit
	})

	return result
}

// WinRateBoard filters to players with at least opts.MinGames games and
// sorts by win rate descending.
func WinRateBoard(rows []Row, opts Options) []Row {
	opts = opts.Normalize()

	board := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.TotalGames >= opts.MinGames {
			board = append(board, row)
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].WinRate > board[j].WinRate
	})

	return board
}

// MaxWinBoard filters to players whose best single win reaches
// opts.MaxWinFloor, sorted descending, capped to opts.BoardSize.
func MaxWinBoard(rows []Row, opts Options) []Row {
	opts = opts.Normalize()

	board := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.MaxWin >= opts.MaxWinFloor {
			board = append(board, row)
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].MaxWin > board[j].MaxWin
	})

	if len(board) > opts.BoardSize {
		board = board[:opts.BoardSize]
	}

	return board
}

// StreakBoard filters to players whose longest win streak reaches
// opts.MinStreak, sorted descending, capped to opts.BoardSize.
func StreakBoard(rows []Row, opts Options) []Row {
	opts = opts.Normalize()

	board := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.MaxWinStreak >= opts.MinStreak {
			board = append(board, row)
		}
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].MaxWinStreak > board[j].MaxWinStreak
	})

	if len(board) > opts.BoardSize {
		board = board[:opts.BoardSize]
	}

	return board
}
