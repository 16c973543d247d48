package services

import (
	"context"

	"github.com/pokerdesk/club_ledger/internal/cache"
	"github.com/pokerdesk/club_ledger/internal/ranking"
	"github.com/pokerdesk/club_ledger/internal/repositories"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

// RankingService recomputes the leaderboards on demand from the full set of
// outcome facts. Reads are side-effect-free and may observe a snapshot
// slightly behind concurrent ledger writes.
type RankingService struct {
	outcomes *repositories.OutcomeRepository
	players  *repositories.PlayerRepository
	cache    *cache.RankingCache
	opts     ranking.Options
	log      *logger.Logger
}

func NewRankingService(
	outcomes *repositories.OutcomeRepository,
	players *repositories.PlayerRepository,
	rankingCache *cache.RankingCache,
	opts ranking.Options,
	log *logger.Logger,
) *RankingService {
	return &RankingService{
		outcomes: outcomes,
		players:  players,
		cache:    rankingCache,
		opts:     opts.Normalize(),
		log:      log.Named("ranking"),
	}
}

// Rows returns the primary ranking, cached when possible.
func (s *RankingService) Rows(ctx context.Context) ([]ranking.Row, error) {
	if s.cache != nil {
		rows, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("ranking cache read failed", "error", err)
		} else if rows != nil {
			return rows, nil
		}
	}

	rows, err := s.recompute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rows); err != nil {
			s.log.Warn("ranking cache write failed", "error", err)
		}
	}

	return rows, nil
}

// recompute reads the facts and the roster once each, then runs the pure
// aggregation. The single ordered query per input keeps one computation
// internally consistent.
func (s *RankingService) recompute(ctx context.Context) ([]ranking.Row, error) {
	facts, err := s.outcomes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	roster, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := ranking.Compute(facts, roster)
	s.log.Debug("ranking recomputed", "facts", len(facts), "rows", len(rows))
	return rows, nil
}

// WinRateBoard returns the win-rate leaderboard.
func (s *RankingService) WinRateBoard(ctx context.Context) ([]ranking.Row, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.WinRateBoard(rows, s.opts), nil
}

// MaxWinBoard returns the biggest-single-win leaderboard.
func (s *RankingService) MaxWinBoard(ctx context.Context) ([]ranking.Row, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.MaxWinBoard(rows, s.opts), nil
}

// StreakBoard returns the win-streak leaderboard.
func (s *RankingService) StreakBoard(ctx context.Context) ([]ranking.Row, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.StreakBoard(rows, s.opts), nil
}

// Invalidate drops the cached snapshot, forcing the next read to recompute.
func (s *RankingService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("ranking cache invalidation failed", "error", err)
	}
}
