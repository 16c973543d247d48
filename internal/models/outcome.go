package models

import (
	"time"
)

// SessionOutcome is the immutable fact written when a session settles. The
// ranking engine reads these and nothing else; profit is always re-derived
// from the raw amounts rather than stored.
type SessionOutcome struct {
	ID              uint      `gorm:"primaryKey"`
	PlayerID        uint      `gorm:"not null;index"`
	PlayerName      string    `gorm:"type:varchar(255);not null"`
	BuyIn           int64     `gorm:"not null"`
	AdditionalStack int64     `gorm:"default:0;not null"`
	FinalStack      int64     `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

// Profit derives the session result from the raw amounts.
func (o *SessionOutcome) Profit() int64 {
	return o.FinalStack - (o.BuyIn + o.AdditionalStack)
}

// Valid reports whether the fact is well formed enough to aggregate.
// Malformed facts are skipped by consumers, never fatal.
func (o *SessionOutcome) Valid() bool {
	return o.PlayerID != 0 && o.BuyIn >= 0 && o.AdditionalStack >= 0 && o.FinalStack >= 0
}

func (SessionOutcome) TableName() string {
	return "session_outcomes"
}
