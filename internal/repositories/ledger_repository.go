package repositories

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// lockPlayer fetches the player row with a FOR UPDATE lock. Every balance
// mutation goes through this so concurrent posts for one player serialize on
// the row instead of racing on read-then-write.
func lockPlayer(tx *gorm.DB, playerID uint) (*models.Player, error) {
	var player models.Player
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&player, playerID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.ErrCodeNotFound, "player not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to get player")
	}
	return &player, nil
}

// postTransaction appends a ledger row and moves the player balance in the
// caller's transaction. A dedup-key collision means a retried post already
// applied; the original row is returned and nothing is written twice.
func postTransaction(tx *gorm.DB, player *models.Player, txn *models.Transaction) (*models.Transaction, error) {
	if err := tx.Create(txn).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Transaction
			if ferr := tx.Where("dedup_key = ?", txn.DedupKey).First(&existing).Error; ferr != nil {
				return nil, errors.Wrap(ferr, errors.ErrCodePersistence, "failed to load deduplicated transaction")
			}
			return &existing, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to create transaction")
	}

	if err := tx.Model(player).Update("balance", txn.BalanceAfter).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to update balance")
	}

	return txn, nil
}

// ApplyAdjustment sets the player's balance to newBalance and records the
// delta as a deposit (delta >= 0) or withdrawal. The transaction row and the
// balance update commit together or not at all.
func (r *LedgerRepository) ApplyAdjustment(ctx context.Context, playerID uint, newBalance int64, reason, actor, dedupKey string) (*models.Transaction, error) {
	var posted *models.Transaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player, err := lockPlayer(tx, playerID)
		if err != nil {
			return err
		}

		delta := newBalance - player.Balance
		txType := models.TxTypeDeposit
		if delta < 0 {
			txType = models.TxTypeWithdrawal
		}

		txn := &models.Transaction{
			PlayerID:      player.ID,
			Type:          txType,
			Amount:        delta,
			BalanceBefore: player.Balance,
			BalanceAfter:  newBalance,
			Description:   reason,
			CreatedBy:     actor,
			DedupKey:      dedupKey,
		}

		posted, err = postTransaction(tx, player, txn)
		return err
	})
	if err != nil {
		return nil, err
	}

	return posted, nil
}

// GetHistory retrieves the player's most recent transactions, newest first.
func (r *LedgerRepository) GetHistory(ctx context.Context, playerID uint, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&transactions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to get transaction history")
	}

	return transactions, nil
}

// GetLatest returns the player's most recent transaction, or NotFound if the
// ledger is empty.
func (r *LedgerRepository) GetLatest(ctx context.Context, playerID uint) (*models.Transaction, error) {
	var txn models.Transaction
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC, id DESC").
		First(&txn)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("no transactions for player %d", playerID))
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to get latest transaction")
	}

	return &txn, nil
}
