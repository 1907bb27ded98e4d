package models

import (
	"time"
)

// Device status constants
const (
	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"
)

// Device is a paired child device. Created when verification succeeds,
// refreshed by heartbeats, removed by unpair.
type Device struct {
	ID        string    `gorm:"primaryKey" json:"deviceId"`
	Name      string    `gorm:"not null"   json:"name"`
	Battery   int       `json:"battery"`
	Network   string    `json:"network"`
	Status    string    `gorm:"index"      json:"status"`
	LastSync  time.Time `json:"lastSync"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (d *Device) IsOnline() bool {
	return d.Status == DeviceStatusOnline
}
