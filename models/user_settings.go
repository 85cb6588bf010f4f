package models

import "time"

// DefaultReminderDaysAhead window used by the parcel reminder when unset
const DefaultReminderDaysAhead = 3

// UserSettings per-account notification preferences
type UserSettings struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Email             string    `json:"email" gorm:"size:100"`
	RemindersEnabled  bool      `json:"reminders_enabled" gorm:"not null"`
	ReminderDaysAhead int       `json:"reminder_days_ahead" gorm:"not null"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
