package repositories

import (
	"context"

	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"gorm.io/gorm"
)

// importBatchSize caps how many outcome rows go into a single batched
// insert. Larger imports are chunked into sequential batches.
const importBatchSize = 500

type OutcomeRepository struct {
	db *gorm.DB
}

func NewOutcomeRepository(db *gorm.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// ListAll returns every outcome fact in chronological order. The single
// query gives the ranking engine one consistent snapshot per run.
func (r *OutcomeRepository) ListAll(ctx context.Context) ([]models.SessionOutcome, error) {
	var outcomes []models.SessionOutcome
	result := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&outcomes)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to list session outcomes")
	}

	return outcomes, nil
}

// ListByPlayer returns one player's history, oldest first.
func (r *OutcomeRepository) ListByPlayer(ctx context.Context, playerID uint) ([]models.SessionOutcome, error) {
	var outcomes []models.SessionOutcome
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at ASC, id ASC").
		Find(&outcomes)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to list player outcomes")
	}

	return outcomes, nil
}

// Import bulk-loads historical outcome facts, chunked into batches of 500.
func (r *OutcomeRepository) Import(ctx context.Context, outcomes []models.SessionOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).CreateInBatches(outcomes, importBatchSize)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to import session outcomes")
	}

	return nil
}
