package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/internal/repositories"
	"github.com/pokerdesk/club_ledger/internal/security"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"github.com/pokerdesk/club_ledger/pkg/logger"
	"github.com/pokerdesk/club_ledger/pkg/utils"
)

type PlayerService struct {
	repo *repositories.PlayerRepository
	log  *logger.Logger
}

func NewPlayerService(repo *repositories.PlayerRepository, log *logger.Logger) *PlayerService {
	return &PlayerService{
		repo: repo,
		log:  log.Named("player"),
	}
}

// Register creates a player with an opening balance and its ledger record.
func (s *PlayerService) Register(ctx context.Context, displayName, kana, statusMode string, initialBalance int64, actor string) (*models.Player, error) {
	displayName = security.SanitizeFreeText(displayName)
	kana = utils.NormalizeKana(security.SanitizeFreeText(kana))
	actor = security.SanitizeFreeText(actor)

	if displayName == "" {
		return nil, errors.New(errors.ErrCodeValidation, "display name is required")
	}
	if actor == "" {
		return nil, errors.New(errors.ErrCodeValidation, "actor is required")
	}
	if statusMode == "" {
		statusMode = models.StatusModeNormal
	}
	if !models.ValidStatusMode(statusMode) {
		return nil, errors.New(errors.ErrCodeValidation, "unknown status mode: "+statusMode)
	}
	if initialBalance < 0 {
		return nil, errors.New(errors.ErrCodeValidation, "initial balance must not be negative")
	}

	player := &models.Player{
		DisplayName: displayName,
		Kana:        kana,
		StatusMode:  statusMode,
	}
	if err := s.repo.Create(ctx, player, initialBalance, actor, uuid.NewString()); err != nil {
		return nil, err
	}

	s.log.Info("player registered",
		"player_id", player.ID,
		"display_name", player.DisplayName,
		"status_mode", player.StatusMode,
		"initial_balance", initialBalance,
	)
	return player, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID uint) (*models.Player, error) {
	return s.repo.GetByID(ctx, playerID)
}

func (s *PlayerService) List(ctx context.Context) ([]models.Player, error) {
	return s.repo.List(ctx)
}

// SetStatusMode switches the player's charge policy. Rejected mid-session.
func (s *PlayerService) SetStatusMode(ctx context.Context, playerID uint, mode string) error {
	if err := s.repo.SetStatusMode(ctx, playerID, mode); err != nil {
		return err
	}
	s.log.Info("status mode changed", "player_id", playerID, "mode", mode)
	return nil
}
