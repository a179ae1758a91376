package models

import (
	"time"
)

// HourStat is the average load for one hour of one day. Day carries the date
// of the owning DaySummary as a lookup key (yyyy-mm-dd), not a pointer, so a
// report stays an acyclic value that can be serialized as-is.
type HourStat struct {
	Hour   int     `json:"hour"`
	AvgCpu float64 `json:"avg_cpu"`
	AvgRam float64 `json:"avg_ram"`
	Day    string  `json:"day"`
}

// DaySummary aggregates one calendar day of snapshots: hourly buckets in
// ascending hour order plus day-level averages and the estimated uptime.
type DaySummary struct {
	Date        string     `json:"date"`
	Hours       []HourStat `json:"hours"`
	UptimeHours float64    `json:"uptime_hours"`
	CpuAvg      float64    `json:"cpu_avg"`
	RamAvg      float64    `json:"ram_avg"`
	AppUsage    []AppUsage `json:"app_usage"`
}

// AppUsage is one row of the application-usage histogram. A slice of these
// preserves first-occurrence order, which a map cannot.
type AppUsage struct {
	App     string  `json:"app"`
	Percent float64 `json:"percent"`
}

// SectionFlags selects which optional sections a report generation computes
// and which sections its export carries. Basic info (name, period, owner) is
// always included regardless of flags.
type SectionFlags struct {
	CpuRam      bool `json:"cpu_ram"`
	Idle        bool `json:"idle"`
	DailyUptime bool `json:"daily_uptime"`
	HourlyStats bool `json:"hourly_stats"`
	AppUsage    bool `json:"app_usage"`
}

// Report is a persisted aggregation over one user's period. Optional fields
// are nil unless the matching section flag was set when the report was
// generated. A report is immutable after creation except for deletion.
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	PeriodStart time.Time `gorm:"not null;index" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null;index" json:"period_end"`

	CpuAvg           *float64 `json:"cpu_avg,omitempty"`
	RamAvg           *float64 `json:"ram_avg,omitempty"`
	IdleTotalSeconds *int64   `json:"idle_total_seconds,omitempty"`
	AvgUptimeHours   *float64 `json:"avg_uptime_hours,omitempty"`

	Days     []DaySummary `gorm:"serializer:json" json:"days,omitempty"`
	AppUsage []AppUsage   `gorm:"serializer:json" json:"app_usage,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ExportPackage is the flattened, format-agnostic projection of a report that
// external renderers consume. Name and Period are always present; every other
// field mirrors the report's optional sections.
type ExportPackage struct {
	Name   string `json:"name"`
	Period string `json:"period"`

	CpuAvg         *float64 `json:"cpu_avg,omitempty"`
	RamAvg         *float64 `json:"ram_avg,omitempty"`
	IdleSeconds    *int64   `json:"idle_seconds,omitempty"`
	AvgUptimeHours *float64 `json:"avg_uptime_hours,omitempty"`

	Days     []DaySummary `json:"days,omitempty"`
	AppUsage []AppUsage   `json:"app_usage,omitempty"`
}
