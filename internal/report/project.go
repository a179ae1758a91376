package report

import (
	"fmt"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/models"
)

// Aggregates are the raw statistics computed over one period, before any
// section selection is applied.
type Aggregates struct {
	CpuAvg           float64
	RamAvg           float64
	IdleTotalSeconds int64
	AvgUptimeHours   float64
	Days             []models.DaySummary
	AppUsage         []models.AppUsage
}

// ComputeAggregates runs the engine over one period's snapshots and idle
// intervals.
func ComputeAggregates(snaps []models.Snapshot, intervals []models.IdleInterval) Aggregates {
	return Aggregates{
		CpuAvg:           Average(snaps, CpuLoad),
		RamAvg:           Average(snaps, RamUsedMb),
		IdleTotalSeconds: TotalIdle(intervals),
		AvgUptimeHours:   AverageUptime(snaps),
		Days:             BuildDaySummaries(snaps),
		AppUsage:         AppUsagePercent(snaps),
	}
}

// Project assembles, in one stateless pass, both the report to persist and
// the package handed to a renderer. Basic info (owner, name, period) is
// always present; optional sections follow in a fixed order: cpu/ram
// averages, idle total, average daily uptime, per-day tables, total app
// usage. Nothing is retained between invocations.
func Project(userID uint, name string, start, end time.Time, agg Aggregates, flags models.SectionFlags) (*models.Report, *models.ExportPackage) {
	rep := &models.Report{
		UserID:      userID,
		Name:        name,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	pkg := &models.ExportPackage{
		Name:   name,
		Period: fmt.Sprintf("%s - %s", dateKey(start), dateKey(end)),
	}

	if flags.CpuRam {
		cpu := agg.CpuAvg
		ram := agg.RamAvg
		rep.CpuAvg, rep.RamAvg = &cpu, &ram
		pkg.CpuAvg, pkg.RamAvg = &cpu, &ram
	}

	if flags.Idle {
		idle := agg.IdleTotalSeconds
		rep.IdleTotalSeconds = &idle
		pkg.IdleSeconds = &idle
	}

	if flags.DailyUptime {
		uptime := agg.AvgUptimeHours
		rep.AvgUptimeHours = &uptime
		pkg.AvgUptimeHours = &uptime
	}

	if flags.HourlyStats {
		rep.Days = agg.Days
		pkg.Days = agg.Days
	}

	if flags.AppUsage {
		rep.AppUsage = agg.AppUsage
		pkg.AppUsage = agg.AppUsage
	}

	return rep, pkg
}
