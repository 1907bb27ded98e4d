package models

import (
	"time"
)

// Parent is the dashboard account. A default account is seeded on first run
// with a random password printed to the log.
type Parent struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
