package services

import (
	"github.com/pokerdesk/club_ledger/internal/config"
	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/errors"
)

// chargePolicy is the closed set of per-status-mode charge rules. Each
// method is pure: it maps the balance read under the row lock to the new
// balance and the cash amount to bill out of band.
type chargePolicy interface {
	// start applies the initial buy-in.
	start(balance, buyIn int64) (newBalance, purchase int64)
	// addOn applies a mid-session additional buy-in.
	addOn(balance, amount int64) (newBalance, purchase int64)
	// settle resolves the session at finalStack.
	settle(balance, finalStack int64) (newBalance, purchase int64)
}

// policyFor selects the policy once, at the settlement engine's entry point.
func policyFor(mode, deductionBilling string) (chargePolicy, error) {
	switch mode {
	case models.StatusModeNormal:
		return normalPolicy{}, nil
	case models.StatusModeSpecial:
		return specialPolicy{}, nil
	case models.StatusModeDeduction:
		return deductionPolicy{billImmediately: deductionBilling == config.DeductionBillingImmediate}, nil
	}
	return nil, errors.New(errors.ErrCodeValidation, "unknown status mode: "+mode)
}

// normalPolicy bills any shortfall up front and never lets the balance go
// negative.
type normalPolicy struct{}

func (normalPolicy) start(balance, buyIn int64) (int64, int64) {
	purchase := buyIn - balance
	if purchase < 0 {
		purchase = 0
	}
	newBalance := balance - buyIn
	if newBalance < 0 {
		newBalance = 0
	}
	return newBalance, purchase
}

func (normalPolicy) addOn(balance, amount int64) (int64, int64) {
	// Additional buy-ins accumulate without re-triggering the charge rule;
	// the balance settles at cash-out.
	return balance - amount, 0
}

func (normalPolicy) settle(balance, finalStack int64) (int64, int64) {
	return finalStack, 0
}

// specialPolicy never bills. The balance may go negative and stays the
// club's problem.
type specialPolicy struct{}

func (specialPolicy) start(balance, buyIn int64) (int64, int64) {
	return balance - buyIn, 0
}

func (specialPolicy) addOn(balance, amount int64) (int64, int64) {
	return balance - amount, 0
}

func (specialPolicy) settle(balance, finalStack int64) (int64, int64) {
	return finalStack, 0
}

// deductionPolicy plays like specialPolicy but any negative balance becomes
// a billed purchase at cash-out. billImmediately moves that moment to the
// additional buy-in itself.
type deductionPolicy struct {
	billImmediately bool
}

func (deductionPolicy) start(balance, buyIn int64) (int64, int64) {
	return balance - buyIn, 0
}

func (p deductionPolicy) addOn(balance, amount int64) (int64, int64) {
	newBalance := balance - amount
	if !p.billImmediately || newBalance >= 0 {
		return newBalance, 0
	}
	return 0, -newBalance
}

func (deductionPolicy) settle(balance, finalStack int64) (int64, int64) {
	var purchase int64
	if balance < 0 {
		purchase = -balance
	}
	return finalStack, purchase
}
