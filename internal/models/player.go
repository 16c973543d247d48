package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID               uint      `gorm:"primaryKey"`
	DisplayName      string    `gorm:"type:varchar(255);not null"`
	Kana             string    `gorm:"type:varchar(255)"` // reading for sorted member lists
	Balance          int64     `gorm:"default:0;not null"`
	StatusMode       string    `gorm:"type:varchar(20);default:'normal';not null;index"`
	IsPlaying        bool      `gorm:"default:false;not null;index"`
	CurrentSessionID *uint     `gorm:"index"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// Status mode constants. The mode selects the charge policy applied when the
// player enters and leaves a session.
const (
	StatusModeNormal    = "normal"
	StatusModeSpecial   = "special"
	StatusModeDeduction = "deduction"
)

// ValidStatusMode reports whether mode is one of the three charge modes.
func ValidStatusMode(mode string) bool {
	switch mode {
	case StatusModeNormal, StatusModeSpecial, StatusModeDeduction:
		return true
	}
	return false
}

// BeforeSave hook for validation
func (p *Player) BeforeSave(tx *gorm.DB) error {
	if !ValidStatusMode(p.StatusMode) {
		return gorm.ErrInvalidData
	}
	if p.DisplayName == "" {
		return gorm.ErrInvalidData
	}
	// A player not at the table must not point at a session.
	if !p.IsPlaying && p.CurrentSessionID != nil {
		return gorm.ErrInvalidData
	}
	return nil
}

// TableName specifies the table name
func (Player) TableName() string {
	return "players"
}
