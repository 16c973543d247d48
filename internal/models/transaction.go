package models

import (
	"time"
)

// Transaction is an append-only ledger record. Rows are never updated or
// deleted once written; the player's balance must always equal BalanceAfter
// of their most recent row.
type Transaction struct {
	ID            uint      `gorm:"primaryKey"`
	PlayerID      uint      `gorm:"not null;index"`
	Player        Player    `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	SessionID     *uint     `gorm:"index"`
	Type          string    `gorm:"type:varchar(30);not null;index"`
	Amount        int64     `gorm:"not null"` // signed delta
	BalanceBefore int64     `gorm:"not null"`
	BalanceAfter  int64     `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	CreatedBy     string    `gorm:"type:varchar(255);not null"`
	DedupKey      string    `gorm:"uniqueIndex;type:varchar(36);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

// Transaction type constants
const (
	TxTypeDeposit           = "deposit"
	TxTypeWithdrawal        = "withdrawal"
	TxTypeSessionBuyIn      = "session_buy_in"
	TxTypeSessionAdditional = "session_additional"
	TxTypeSessionCashOut    = "session_cash_out"
)

func (Transaction) TableName() string {
	return "transactions"
}
