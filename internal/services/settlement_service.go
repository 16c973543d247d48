package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pokerdesk/club_ledger/internal/billing"
	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/internal/notify"
	"github.com/pokerdesk/club_ledger/internal/repositories"
	"github.com/pokerdesk/club_ledger/internal/security"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

// StartResult reports a session start. PurchaseAmount is the cash to bill
// out of band; it is never posted to the ledger.
type StartResult struct {
	Session        *models.Session
	PurchaseAmount int64
	BalanceAfter   int64
}

// SettleResult reports a settlement. Profit is derived from the outcome
// fact, not stored.
type SettleResult struct {
	Session        *models.Session
	Outcome        *models.SessionOutcome
	Profit         int64
	PurchaseAmount int64
	BalanceAfter   int64
}

// SettlementService drives the NotPlaying -> Playing -> NotPlaying state
// machine and applies the per-status-mode charge policy.
type SettlementService struct {
	sessions         *repositories.SessionRepository
	players          *repositories.PlayerRepository
	hub              *OutcomeHub
	reporter         billing.Reporter
	notifier         notify.Notifier
	deductionBilling string
	locks            *playerLocks
	log              *logger.Logger
}

func NewSettlementService(
	sessions *repositories.SessionRepository,
	players *repositories.PlayerRepository,
	hub *OutcomeHub,
	reporter billing.Reporter,
	notifier notify.Notifier,
	deductionBilling string,
	log *logger.Logger,
) *SettlementService {
	return &SettlementService{
		sessions:         sessions,
		players:          players,
		hub:              hub,
		reporter:         reporter,
		notifier:         notifier,
		deductionBilling: deductionBilling,
		locks:            newPlayerLocks(),
		log:              log.Named("settlement"),
	}
}

// StartSession seats the player with the given buy-in. buyIn = 0 is a valid
// seat-hold with no charge.
func (s *SettlementService) StartSession(ctx context.Context, playerID uint, buyIn int64, actor string) (*StartResult, error) {
	actor = security.SanitizeFreeText(actor)
	if actor == "" {
		return nil, errors.New(errors.ErrCodeValidation, "actor is required")
	}
	if buyIn < 0 {
		return nil, errors.New(errors.ErrCodeValidation, "buy-in amount must not be negative")
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	policy, err := policyFor(player.StatusMode, s.deductionBilling)
	if err != nil {
		return nil, err
	}

	var balanceAfter int64
	session, purchase, err := s.sessions.Start(ctx, playerID, buyIn, actor, uuid.NewString(), func(balance int64) (int64, int64) {
		newBalance, p := policy.start(balance, buyIn)
		balanceAfter = newBalance
		return newBalance, p
	})
	if err != nil {
		return nil, err
	}

	if purchase > 0 {
		s.reportPurchase(ctx, player, purchase, billing.StageBuyIn)
	}

	s.log.Info("session started",
		"player_id", playerID,
		"session_id", session.ID,
		"buy_in", buyIn,
		"purchase", purchase,
		"balance_after", balanceAfter,
		"status_mode", player.StatusMode,
	)

	return &StartResult{
		Session:        session,
		PurchaseAmount: purchase,
		BalanceAfter:   balanceAfter,
	}, nil
}

// AddBuyIn accumulates a mid-session buy-in. It never re-triggers the start
// charge rule; under deduction mode with immediate billing the shortfall is
// billed here instead of at settlement.
func (s *SettlementService) AddBuyIn(ctx context.Context, playerID uint, amount int64, actor string) (*StartResult, error) {
	actor = security.SanitizeFreeText(actor)
	if actor == "" {
		return nil, errors.New(errors.ErrCodeValidation, "actor is required")
	}
	if amount < 0 {
		return nil, errors.New(errors.ErrCodeValidation, "additional buy-in must not be negative")
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	policy, err := policyFor(player.StatusMode, s.deductionBilling)
	if err != nil {
		return nil, err
	}

	var balanceAfter int64
	session, purchase, err := s.sessions.AddBuyIn(ctx, playerID, amount, actor, uuid.NewString(), func(balance int64) (int64, int64) {
		newBalance, p := policy.addOn(balance, amount)
		balanceAfter = newBalance
		return newBalance, p
	})
	if err != nil {
		return nil, err
	}

	if purchase > 0 {
		s.reportPurchase(ctx, player, purchase, billing.StageAdditional)
	}

	s.log.Info("additional buy-in",
		"player_id", playerID,
		"session_id", session.ID,
		"amount", amount,
		"purchase", purchase,
		"balance_after", balanceAfter,
	)

	return &StartResult{
		Session:        session,
		PurchaseAmount: purchase,
		BalanceAfter:   balanceAfter,
	}, nil
}

// SettleSession closes the active session at finalStack, appends the outcome
// fact and publishes it. finalStack = 0 records a total loss.
func (s *SettlementService) SettleSession(ctx context.Context, playerID uint, finalStack int64, actor string) (*SettleResult, error) {
	actor = security.SanitizeFreeText(actor)
	if actor == "" {
		return nil, errors.New(errors.ErrCodeValidation, "actor is required")
	}
	if finalStack < 0 {
		return nil, errors.New(errors.ErrCodeValidation, "final stack must not be negative")
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	policy, err := policyFor(player.StatusMode, s.deductionBilling)
	if err != nil {
		return nil, err
	}

	session, outcome, purchase, err := s.sessions.Settle(ctx, playerID, finalStack, actor, uuid.NewString(), func(balance int64) (int64, int64) {
		return policy.settle(balance, finalStack)
	})
	if err != nil {
		return nil, err
	}

	if purchase > 0 {
		s.reportPurchase(ctx, player, purchase, billing.StageCashOut)
	}

	s.hub.Publish(*outcome)

	profit := outcome.Profit()
	if err := s.notifier.SettlementRecorded(ctx, *outcome, profit, purchase); err != nil {
		s.log.Warn("settlement notification failed", "player_id", playerID, "error", err)
	}

	s.log.Info("session settled",
		"player_id", playerID,
		"session_id", session.ID,
		"final_stack", finalStack,
		"profit", profit,
		"purchase", purchase,
		"balance_after", finalStack,
	)

	return &SettleResult{
		Session:        session,
		Outcome:        outcome,
		Profit:         profit,
		PurchaseAmount: purchase,
		BalanceAfter:   finalStack,
	}, nil
}

// reportPurchase hands the billable amount to the payment collaborator. A
// reporting failure is logged, not propagated: the ledger state is already
// committed and must stay observable.
func (s *SettlementService) reportPurchase(ctx context.Context, player *models.Player, amount int64, stage string) {
	if err := s.reporter.ReportPurchase(ctx, player.ID, player.DisplayName, amount, stage); err != nil {
		s.log.Error("purchase report failed",
			"player_id", player.ID,
			"amount", amount,
			"stage", stage,
			"error", err,
		)
	}
}
