package services

import (
	"context"
	"testing"

	"github.com/pokerdesk/club_ledger/internal/config"
	"github.com/pokerdesk/club_ledger/internal/notify"
	"github.com/pokerdesk/club_ledger/pkg/errors"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

// Validation happens before any repository call, so a service with nil
// repositories is enough to cover the rejection paths.
func newValidationOnlyService() *SettlementService {
	return NewSettlementService(
		nil, nil, NewOutcomeHub(logger.NewNop()), nil, notify.NopNotifier{},
		config.DeductionBillingDeferred, logger.NewNop(),
	)
}

func TestSettlementService_InputValidation(t *testing.T) {
	s := newValidationOnlyService()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "Start without actor",
			call: func() error {
				_, err := s.StartSession(ctx, 1, 1000, "")
				return err
			},
		},
		{
			name: "Start with negative buy-in",
			call: func() error {
				_, err := s.StartSession(ctx, 1, -1, "floor-manager")
				return err
			},
		},
		{
			name: "Rebuy without actor",
			call: func() error {
				_, err := s.AddBuyIn(ctx, 1, 1000, "   ")
				return err
			},
		},
		{
			name: "Rebuy with negative amount",
			call: func() error {
				_, err := s.AddBuyIn(ctx, 1, -500, "floor-manager")
				return err
			},
		},
		{
			name: "Settle without actor",
			call: func() error {
				_, err := s.SettleSession(ctx, 1, 1000, "")
				return err
			},
		},
		{
			name: "Settle with negative final stack",
			call: func() error {
				_, err := s.SettleSession(ctx, 1, -1, "floor-manager")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.HasCode(err, errors.ErrCodeValidation) {
				t.Errorf("error code = %q, want %q", errors.Code(err), errors.ErrCodeValidation)
			}
		})
	}
}
