package models

import (
	"time"
)

type Session struct {
	ID               uint       `gorm:"primaryKey"`
	PlayerID         uint       `gorm:"not null;index"`
	Player           Player     `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	BuyInAmount      int64      `gorm:"not null"`
	AdditionalBuyIns int64      `gorm:"default:0;not null"` // running sum of mid-session buy-ins
	CurrentStack     int64      `gorm:"default:0;not null"`
	Status           string     `gorm:"type:varchar(20);default:'active';index"`
	JoinedAt         time.Time  `gorm:"default:CURRENT_TIMESTAMP;index"`
	SettledAt        *time.Time `gorm:"index"`
	FinalStack       *int64
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

// Session status constants
const (
	SessionStatusActive  = "active"
	SessionStatusSettled = "settled"
)

// TotalBuyIn returns the full amount the player committed this session.
func (s *Session) TotalBuyIn() int64 {
	return s.BuyInAmount + s.AdditionalBuyIns
}

func (Session) TableName() string {
	return "sessions"
}
