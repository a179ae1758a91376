package models

import (
	"time"
)

// User is an already-authenticated identity. Authentication itself lives
// outside this module; services only check that an identity is present and
// saved before touching per-user data. A nil *User means guest mode.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Saved reports whether the user carries a persisted identity.
func (u *User) Saved() bool {
	return u != nil && u.ID != 0
}
