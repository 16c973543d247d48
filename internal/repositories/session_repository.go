package repositories

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"gorm.io/gorm"
)

// ChargeFunc computes the balance transition for a session operation from
// the balance read under the row lock. It returns the player's new balance
// and the cash amount to bill out of band. Charge funcs must be pure; the
// repository calls them inside the database transaction.
type ChargeFunc func(balance int64) (newBalance, purchase int64)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID uint) (*models.Session, error) {
	var session models.Session
	result := r.db.WithContext(ctx).First(&session, sessionID)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "session not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to get session")
	}

	return &session, nil
}

// lockActiveSession loads the player's active session inside the caller's
// transaction. The player row must already be locked.
func lockActiveSession(tx *gorm.DB, player *models.Player) (*models.Session, error) {
	if !player.IsPlaying || player.CurrentSessionID == nil {
		return nil, errors.New(errors.ErrCodeStateConflict, "player is not in a session")
	}

	var session models.Session
	if err := tx.First(&session, *player.CurrentSessionID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrCodeNotFound, "active session not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to get active session")
	}
	if session.Status != models.SessionStatusActive {
		return nil, errors.New(errors.ErrCodeStateConflict, "session is not active")
	}

	return &session, nil
}

// Start opens a session for the player. The charge func sees the locked
// balance; its purchase amount is returned for out-of-band billing and is
// never posted to the ledger. The session row, the buy-in transaction and
// the player update commit atomically.
func (r *SessionRepository) Start(ctx context.Context, playerID uint, buyIn int64, actor, dedupKey string, charge ChargeFunc) (*models.Session, int64, error) {
	var (
		session  *models.Session
		purchase int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player, err := lockPlayer(tx, playerID)
		if err != nil {
			return err
		}
		if player.IsPlaying {
			return errors.New(errors.ErrCodeStateConflict, "player is already in a session")
		}

		newBalance, p := charge(player.Balance)
		purchase = p

		session = &models.Session{
			PlayerID:     player.ID,
			BuyInAmount:  buyIn,
			CurrentStack: buyIn,
			Status:       models.SessionStatusActive,
			JoinedAt:     time.Now().UTC(),
		}
		if err := tx.Create(session).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to create session")
		}

		txn := &models.Transaction{
			PlayerID:      player.ID,
			SessionID:     &session.ID,
			Type:          models.TxTypeSessionBuyIn,
			Amount:        newBalance - player.Balance,
			BalanceBefore: player.Balance,
			BalanceAfter:  newBalance,
			Description:   "session buy-in",
			CreatedBy:     actor,
			DedupKey:      dedupKey,
		}
		if _, err := postTransaction(tx, player, txn); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"is_playing":         true,
			"current_session_id": session.ID,
		}
		if err := tx.Model(player).Updates(updates).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to update player state")
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return session, purchase, nil
}

// AddBuyIn accumulates a mid-session buy-in into the session's additional
// total. The charge func decides whether any shortfall is billed now or
// deferred to settlement.
func (r *SessionRepository) AddBuyIn(ctx context.Context, playerID uint, amount int64, actor, dedupKey string, charge ChargeFunc) (*models.Session, int64, error) {
	var (
		session  *models.Session
		purchase int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player, err := lockPlayer(tx, playerID)
		if err != nil {
			return err
		}

		session, err = lockActiveSession(tx, player)
		if err != nil {
			return err
		}

		newBalance, p := charge(player.Balance)
		purchase = p

		txn := &models.Transaction{
			PlayerID:      player.ID,
			SessionID:     &session.ID,
			Type:          models.TxTypeSessionAdditional,
			Amount:        newBalance - player.Balance,
			BalanceBefore: player.Balance,
			BalanceAfter:  newBalance,
			Description:   "additional buy-in",
			CreatedBy:     actor,
			DedupKey:      dedupKey,
		}
		if _, err := postTransaction(tx, player, txn); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"additional_buy_ins": session.AdditionalBuyIns + amount,
			"current_stack":      session.CurrentStack + amount,
		}
		if err := tx.Model(session).Updates(updates).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to update session")
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return session, purchase, nil
}

// Settle closes the active session at finalStack. It appends the immutable
// outcome fact, posts the cash-out transaction, and returns the session to
// the not-playing state, all in one database transaction.
func (r *SessionRepository) Settle(ctx context.Context, playerID uint, finalStack int64, actor, dedupKey string, resolve ChargeFunc) (*models.Session, *models.SessionOutcome, int64, error) {
	var (
		session  *models.Session
		outcome  *models.SessionOutcome
		purchase int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player, err := lockPlayer(tx, playerID)
		if err != nil {
			return err
		}

		session, err = lockActiveSession(tx, player)
		if err != nil {
			return err
		}

		newBalance, p := resolve(player.Balance)
		purchase = p

		outcome = &models.SessionOutcome{
			PlayerID:        player.ID,
			PlayerName:      player.DisplayName,
			BuyIn:           session.BuyInAmount,
			AdditionalStack: session.AdditionalBuyIns,
			FinalStack:      finalStack,
		}
		if err := tx.Create(outcome).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to create session outcome")
		}

		txn := &models.Transaction{
			PlayerID:      player.ID,
			SessionID:     &session.ID,
			Type:          models.TxTypeSessionCashOut,
			Amount:        newBalance - player.Balance,
			BalanceBefore: player.Balance,
			BalanceAfter:  newBalance,
			Description:   "session cash-out",
			CreatedBy:     actor,
			DedupKey:      dedupKey,
		}
		if _, err := postTransaction(tx, player, txn); err != nil {
			return err
		}

		now := time.Now().UTC()
		sessionUpdates := map[string]interface{}{
			"status":        models.SessionStatusSettled,
			"settled_at":    now,
			"final_stack":   finalStack,
			"current_stack": finalStack,
		}
		if err := tx.Model(session).Updates(sessionUpdates).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to settle session")
		}

		playerUpdates := map[string]interface{}{
			"is_playing":         false,
			"current_session_id": nil,
		}
		if err := tx.Model(player).Updates(playerUpdates).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to update player state")
		}

		return nil
	})
	if err != nil {
		return nil, nil, 0, err
	}

	return session, outcome, purchase, nil
}
