package models

import (
	"time"
)

// Snapshot is one point-in-time reading of system and activity metrics,
// recorded against the user that was active when it was taken. Snapshots are
// append-only; they are never updated after creation.
//
// Metric fields are pointers: a nil value means the reading could not be
// taken, and aggregation skips it instead of counting it as zero.
type Snapshot struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`

	CpuLoad    *float64 `json:"cpu_load"`
	RamUsedMb  *float64 `json:"ram_used_mb"`
	RamTotalMb *float64 `json:"ram_total_mb"`

	DiskTotalGb *float64 `json:"disk_total_gb"`
	DiskFreeGb  *float64 `json:"disk_free_gb"`
	DiskUsedGb  *float64 `json:"disk_used_gb"`
	DiskDetail  string   `json:"disk_detail"`

	ActiveWindow        string `json:"active_window"`
	SystemUptimeSeconds int64  `gorm:"not null;default:0" json:"system_uptime_seconds"`

	KeyPresses  int64 `gorm:"not null;default:0" json:"key_presses"`
	MouseClicks int64 `gorm:"not null;default:0" json:"mouse_clicks"`
	MouseMoves  int64 `gorm:"not null;default:0" json:"mouse_moves"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ErrorLog records a failed collection tick so transient failures are
// inspectable without tailing the daemon log.
type ErrorLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	ErrorMsg  string    `gorm:"not null" json:"error_msg"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
