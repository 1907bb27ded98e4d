package models

import (
	"time"
)

// PairCode is the single active pairing code a parent displays so a child
// device can prove it is authorized to link. At most one row exists at a
// time; issuing a new code replaces the previous one.
type PairCode struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Code      string `gorm:"not null;index"`
	ExpiresAt time.Time
	Used      bool `gorm:"default:false"`
	UsedAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *PairCode) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}
