package services

import (
	"testing"

	"github.com/pokerdesk/club_ledger/internal/config"
	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/errors"
)

func mustPolicy(t *testing.T, mode, billing string) chargePolicy {
	t.Helper()
	policy, err := policyFor(mode, billing)
	if err != nil {
		t.Fatalf("policyFor(%q) error = %v", mode, err)
	}
	return policy
}

func TestPolicyFor_UnknownMode(t *testing.T) {
	_, err := policyFor("vip", config.DeductionBillingDeferred)
	if err == nil {
		t.Fatal("policyFor() expected error for unknown mode, got nil")
	}
	if !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("error code = %q, want %q", errors.Code(err), errors.ErrCodeValidation)
	}
}

func TestNormalPolicy_Start(t *testing.T) {
	tests := []struct {
		name        string
		balance     int64
		buyIn       int64
		wantBalance int64
		wantBill    int64
	}{
		{
			name:        "Shortfall is billed",
			balance:     5000,
			buyIn:       8000,
			wantBalance: 0,
			wantBill:    3000,
		},
		{
			name:        "Balance covers the buy-in",
			balance:     10000,
			buyIn:       8000,
			wantBalance: 2000,
			wantBill:    0,
		},
		{
			name:        "Exact cover",
			balance:     8000,
			buyIn:       8000,
			wantBalance: 0,
			wantBill:    0,
		},
		{
			name:        "Zero buy-in holds the seat",
			balance:     5000,
			buyIn:       0,
			wantBalance: 5000,
			wantBill:    0,
		},
		{
			name:        "Empty balance bills everything",
			balance:     0,
			buyIn:       3000,
			wantBalance: 0,
			wantBill:    3000,
		},
	}

	policy := mustPolicy(t, models.StatusModeNormal, config.DeductionBillingDeferred)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newBalance, purchase := policy.start(tt.balance, tt.buyIn)
			if newBalance != tt.wantBalance {
				t.Errorf("newBalance = %d, want %d", newBalance, tt.wantBalance)
			}
			if purchase != tt.wantBill {
				t.Errorf("purchase = %d, want %d", purchase, tt.wantBill)
			}
		})
	}
}

func TestSpecialPolicy_Start(t *testing.T) {
	policy := mustPolicy(t, models.StatusModeSpecial, config.DeductionBillingDeferred)

	newBalance, purchase := policy.start(500, 3000)
	if newBalance != -2500 {
		t.Errorf("newBalance = %d, want -2500", newBalance)
	}
	if purchase != 0 {
		t.Errorf("purchase = %d, want 0 (special mode never bills)", purchase)
	}
}

func TestDeductionPolicy_StartAndSettle(t *testing.T) {
	policy := mustPolicy(t, models.StatusModeDeduction, config.DeductionBillingDeferred)

	// Nothing billed at the table.
	newBalance, purchase := policy.start(0, 5000)
	if newBalance != -5000 {
		t.Errorf("start: newBalance = %d, want -5000", newBalance)
	}
	if purchase != 0 {
		t.Errorf("start: purchase = %d, want 0", purchase)
	}

	// The negative magnitude is billed at cash-out.
	newBalance, purchase = policy.settle(-5000, 0)
	if newBalance != 0 {
		t.Errorf("settle: newBalance = %d, want 0", newBalance)
	}
	if purchase != 5000 {
		t.Errorf("settle: purchase = %d, want 5000", purchase)
	}
}

func TestDeductionPolicy_SettleWithPositiveBalance(t *testing.T) {
	policy := mustPolicy(t, models.StatusModeDeduction, config.DeductionBillingDeferred)

	newBalance, purchase := policy.settle(1200, 4000)
	if newBalance != 4000 {
		t.Errorf("newBalance = %d, want 4000", newBalance)
	}
	if purchase != 0 {
		t.Errorf("purchase = %d, want 0 when nothing is owed", purchase)
	}
}

func TestDeductionPolicy_AddOnBillingModes(t *testing.T) {
	tests := []struct {
		name        string
		billing     string
		balance     int64
		amount      int64
		wantBalance int64
		wantBill    int64
	}{
		{
			name:        "Deferred keeps the debt on the balance",
			billing:     config.DeductionBillingDeferred,
			balance:     1000,
			amount:      4000,
			wantBalance: -3000,
			wantBill:    0,
		},
		{
			name:        "Immediate bills the shortfall now",
			billing:     config.DeductionBillingImmediate,
			balance:     1000,
			amount:      4000,
			wantBalance: 0,
			wantBill:    3000,
		},
		{
			name:        "Immediate with covering balance bills nothing",
			billing:     config.DeductionBillingImmediate,
			balance:     5000,
			amount:      4000,
			wantBalance: 1000,
			wantBill:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := mustPolicy(t, models.StatusModeDeduction, tt.billing)
			newBalance, purchase := policy.addOn(tt.balance, tt.amount)
			if newBalance != tt.wantBalance {
				t.Errorf("newBalance = %d, want %d", newBalance, tt.wantBalance)
			}
			if purchase != tt.wantBill {
				t.Errorf("purchase = %d, want %d", purchase, tt.wantBill)
			}
		})
	}
}

func TestAddOn_NeverRetriggersStartCharge(t *testing.T) {
	// A normal-mode player rebuying beyond their balance is not billed at
	// that moment; the balance floats negative until cash-out.
	policy := mustPolicy(t, models.StatusModeNormal, config.DeductionBillingDeferred)

	newBalance, purchase := policy.addOn(1000, 4000)
	if newBalance != -3000 {
		t.Errorf("newBalance = %d, want -3000", newBalance)
	}
	if purchase != 0 {
		t.Errorf("purchase = %d, want 0", purchase)
	}
}

func TestSettle_NormalAndSpecialSetBalanceToFinalStack(t *testing.T) {
	for _, mode := range []string{models.StatusModeNormal, models.StatusModeSpecial} {
		policy := mustPolicy(t, mode, config.DeductionBillingDeferred)

		newBalance, purchase := policy.settle(-1200, 7500)
		if newBalance != 7500 {
			t.Errorf("%s: newBalance = %d, want 7500", mode, newBalance)
		}
		if purchase != 0 {
			t.Errorf("%s: purchase = %d, want 0", mode, purchase)
		}
	}
}
