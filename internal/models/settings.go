package models

import (
	"time"
)

// Settings holds the parent's notification toggles. Singleton row, created
// with defaults on first access and mutated in place.
type Settings struct {
	ID                int64     `gorm:"primaryKey"    json:"-"`
	RealtimeAlerts    bool      `gorm:"default:true"  json:"realtimeAlerts"`
	EmailReports      bool      `gorm:"default:false" json:"emailReports"`
	PushNotifications bool      `gorm:"default:true"  json:"pushNotifications"`
	UpdatedAt         time.Time `json:"-"`
}

// SettingsPatch carries a partial settings update. Nil fields are left
// unchanged so the dashboard can resubmit any subset of the toggles.
type SettingsPatch struct {
	RealtimeAlerts    *bool `json:"realtimeAlerts"`
	EmailReports      *bool `json:"emailReports"`
	PushNotifications *bool `json:"pushNotifications"`
}
