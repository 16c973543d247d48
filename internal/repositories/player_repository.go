package repositories

import (
	"context"

	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create registers a player together with their opening ledger transaction.
// Both rows are written in one database transaction.
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player, initialBalance int64, actor, dedupKey string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player.Balance = initialBalance
		if err := tx.Create(player).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to create player")
		}

		opening := &models.Transaction{
			PlayerID:      player.ID,
			Type:          models.TxTypeDeposit,
			Amount:        initialBalance,
			BalanceBefore: 0,
			BalanceAfter:  initialBalance,
			Description:   "registration",
			CreatedBy:     actor,
			DedupKey:      dedupKey,
		}
		if err := tx.Create(opening).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to create opening transaction")
		}

		return nil
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID uint) (*models.Player, error) {
	var player models.Player
	result := r.db.WithContext(ctx).First(&player, playerID)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "player not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to get player")
	}

	return &player, nil
}

// List returns the full roster ordered by kana reading, then display name.
func (r *PlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	result := r.db.WithContext(ctx).
		Order("kana ASC, display_name ASC, id ASC").
		Find(&players)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to list players")
	}

	return players, nil
}

// SetStatusMode switches the player's charge mode. Not allowed mid-session.
func (r *PlayerRepository) SetStatusMode(ctx context.Context, playerID uint, mode string) error {
	if !models.ValidStatusMode(mode) {
		return errors.New(errors.ErrCodeValidation, "unknown status mode: "+mode)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		player, err := lockPlayer(tx, playerID)
		if err != nil {
			return err
		}
		if player.IsPlaying {
			return errors.New(errors.ErrCodeStateConflict, "cannot change status mode while playing")
		}
		if err := tx.Model(player).Update("status_mode", mode).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodePersistence, "failed to update status mode")
		}
		return nil
	})
}
