package billing

import (
	"context"
	"fmt"
	"sync"

	"github.com/pokerdesk/club_ledger/pkg/logger"
)

// CheckoutMode selects what a checkout session charges for.
type CheckoutMode string

const (
	CheckoutOneTime      CheckoutMode = "payment"
	CheckoutSubscription CheckoutMode = "subscription"
)

// Provider is the payment collaborator behind ProviderReporter. The ledger
// never calls it directly; purchase amounts produced by settlement reach it
// as out-of-band checkout sessions.
type Provider interface {
	CreateCustomer(ctx context.Context, name, email string) (customerID string, err error)
	CreateCheckoutSession(ctx context.Context, customerID string, mode CheckoutMode, amount int64) (sessionURL string, err error)
	CreateSubscription(ctx context.Context, customerID, priceID string) (clientSecret string, err error)
}

// Reporter receives the purchase amounts settlement computes. Implementations
// hand them to the payment provider, a cash drawer, or nothing at all.
type Reporter interface {
	ReportPurchase(ctx context.Context, playerID uint, playerName string, amount int64, stage string) error
}

// Purchase stages
const (
	StageBuyIn      = "buy_in"
	StageAdditional = "additional"
	StageCashOut    = "cash_out"
)

// LogReporter records purchases to the log only. Used when no payment
// provider is wired up, and in tests.
type LogReporter struct {
	log *logger.Logger
}

func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) ReportPurchase(ctx context.Context, playerID uint, playerName string, amount int64, stage string) error {
	r.log.Info("purchase reported",
		"player_id", playerID,
		"player_name", playerName,
		"amount", amount,
		"stage", stage,
	)
	return nil
}

// ProviderReporter opens a one-time checkout session for each reported
// purchase. Customers are created lazily per player and reused across
// purchases for the life of the process.
type ProviderReporter struct {
	provider Provider
	log      *logger.Logger

	mu        sync.Mutex
	customers map[uint]string
}

func NewProviderReporter(provider Provider, log *logger.Logger) *ProviderReporter {
	return &ProviderReporter{
		provider:  provider,
		log:       log.Named("billing"),
		customers: make(map[uint]string),
	}
}

func (r *ProviderReporter) ReportPurchase(ctx context.Context, playerID uint, playerName string, amount int64, stage string) error {
	customerID, err := r.customerFor(ctx, playerID, playerName)
	if err != nil {
		return fmt.Errorf("failed to resolve customer for player %d: %w", playerID, err)
	}

	sessionURL, err := r.provider.CreateCheckoutSession(ctx, customerID, CheckoutOneTime, amount)
	if err != nil {
		return fmt.Errorf("failed to create checkout session: %w", err)
	}

	r.log.Info("checkout session created",
		"player_id", playerID,
		"amount", amount,
		"stage", stage,
		"session_url", sessionURL,
	)
	return nil
}

func (r *ProviderReporter) customerFor(ctx context.Context, playerID uint, playerName string) (string, error) {
	r.mu.Lock()
	customerID, ok := r.customers[playerID]
	r.mu.Unlock()
	if ok {
		return customerID, nil
	}

	customerID, err := r.provider.CreateCustomer(ctx, playerName, "")
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.customers[playerID] = customerID
	r.mu.Unlock()
	return customerID, nil
}
