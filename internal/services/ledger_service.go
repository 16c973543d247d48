package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/internal/repositories"
	"github.com/pokerdesk/club_ledger/internal/security"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

// LedgerService posts balance-affecting operations as immutable transaction
// records. It is the source of truth for a player's current balance.
type LedgerService struct {
	repo *repositories.LedgerRepository
	log  *logger.Logger
}

func NewLedgerService(repo *repositories.LedgerRepository, log *logger.Logger) *LedgerService {
	return &LedgerService{
		repo: repo,
		log:  log.Named("ledger"),
	}
}

// ApplyAdjustment moves the player's balance to newBalance and records the
// signed delta. Each call mints a fresh de-duplication key; use
// ApplyAdjustmentWithKey when retrying a failed post.
func (s *LedgerService) ApplyAdjustment(ctx context.Context, playerID uint, newBalance int64, reason, actor string) (*models.Transaction, error) {
	return s.ApplyAdjustmentWithKey(ctx, playerID, newBalance, reason, actor, uuid.NewString())
}

// ApplyAdjustmentWithKey is ApplyAdjustment with a caller-supplied dedup
// key. Posting the same key twice applies the adjustment once.
func (s *LedgerService) ApplyAdjustmentWithKey(ctx context.Context, playerID uint, newBalance int64, reason, actor, dedupKey string) (*models.Transaction, error) {
	reason = security.SanitizeFreeText(reason)
	actor = security.SanitizeFreeText(actor)

	if reason == "" {
		return nil, errors.New(errors.ErrCodeValidation, "adjustment reason is required")
	}
	if actor == "" {
		return nil, errors.New(errors.ErrCodeValidation, "actor is required")
	}
	if dedupKey == "" {
		return nil, errors.New(errors.ErrCodeValidation, "dedup key is required")
	}

	txn, err := s.repo.ApplyAdjustment(ctx, playerID, newBalance, reason, actor, dedupKey)
	if err != nil {
		return nil, err
	}

	s.log.Info("balance adjusted",
		"player_id", playerID,
		"type", txn.Type,
		"amount", txn.Amount,
		"balance_after", txn.BalanceAfter,
		"actor", actor,
	)
	return txn, nil
}

// GetHistory returns the player's recent transactions, newest first.
func (s *LedgerService) GetHistory(ctx context.Context, playerID uint, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetHistory(ctx, playerID, limit)
}
