package models

import (
	"time"
)

// IdleInterval is one tracked offline period for a user. An interval with a
// nil EndTime is "open": the user went offline and has not come back yet.
// At most one open interval may exist per user at any time. An interval is
// mutated exactly once, when it is closed.
type IdleInterval struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`

	EndTime         *time.Time `json:"end_time"`
	DurationSeconds *int64     `json:"duration_seconds"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Open reports whether the interval has not been closed yet.
func (i *IdleInterval) Open() bool {
	return i.EndTime == nil
}
