// Package report aggregates snapshots and idle intervals into per-hour,
// per-day and per-period statistics, and assembles them into persisted
// reports and export packages.
package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/models"
)

// Uptime estimation constants. These are empirical: gaps above the clip are
// treated as machine-off time, and the default kicks in when no gap
// qualifies. Historical reports depend on them staying as they are.
const (
	uptimeGapClipSeconds    = 300
	uptimeDefaultGapSeconds = 10
)

const (
	appLabelMaxRunes = 40
	noWindowLabel    = "Desktop"
)

// appLabelTable maps a case-insensitive title substring to a canonical
// application label. Order matters: the first match wins.
var appLabelTable = []struct {
	keyword string
	label   string
}{
	{"chrome", "Google Chrome"},
	{"firefox", "Mozilla Firefox"},
	{"edge", "Microsoft Edge"},
	{"opera", "Opera Browser"},
	{"word", "MS Word"},
	{"excel", "MS Excel"},
	{"idea", "IntelliJ IDEA"},
	{"studio", "Android Studio"},
	{"telegram", "Telegram"},
	{"viber", "Viber"},
}

// Field extracts one metric value from a snapshot; nil means the reading was
// unavailable and is skipped by Average.
type Field func(s *models.Snapshot) *float64

// Metric selectors for Average.
var (
	CpuLoad   Field = func(s *models.Snapshot) *float64 { return s.CpuLoad }
	RamUsedMb Field = func(s *models.Snapshot) *float64 { return s.RamUsedMb }
)

// Average is the arithmetic mean of the selected metric over snapshots that
// have a value for it, rounded half-up to 2 decimals. 0 if no snapshot does.
func Average(snaps []models.Snapshot, field Field) float64 {
	var sum float64
	var n int
	for i := range snaps {
		if v := field(&snaps[i]); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return roundHalfUp2(sum / float64(n))
}

// TotalIdle sums the duration of intervals whose duration is known. Open
// intervals contribute nothing.
func TotalIdle(intervals []models.IdleInterval) int64 {
	var sum int64
	for i := range intervals {
		if d := intervals[i].DurationSeconds; d != nil {
			sum += *d
		}
	}
	return sum
}

// NormalizeAppLabel folds a window title into a canonical application label:
// a fixed keyword table first, then the raw title truncated to 40 runes with
// an ellipsis, with a placeholder for missing titles.
func NormalizeAppLabel(title string) string {
	if title == "" {
		return noWindowLabel
	}

	lower := strings.ToLower(title)
	for _, entry := range appLabelTable {
		if strings.Contains(lower, entry.keyword) {
			return entry.label
		}
	}

	runes := []rune(title)
	if len(runes) > appLabelMaxRunes {
		return string(runes[:appLabelMaxRunes]) + "..."
	}
	return title
}

// AppUsagePercent groups snapshots by normalized app label and returns the
// share of each label, rounded half-up to 2 decimals. Labels appear in
// first-occurrence order of the input.
func AppUsagePercent(snaps []models.Snapshot) []models.AppUsage {
	if len(snaps) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for i := range snaps {
		label := NormalizeAppLabel(snaps[i].ActiveWindow)
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	total := float64(len(snaps))
	result := make([]models.AppUsage, 0, len(order))
	for _, label := range order {
		result = append(result, models.AppUsage{
			App:     label,
			Percent: roundHalfUp2(float64(counts[label]) * 100 / total),
		})
	}
	return result
}

// DailyUptime estimates hours of machine uptime per calendar date from
// sampling density: the average of consecutive snapshot gaps within
// (0, 300] seconds (10s when none qualify) multiplied by the day's snapshot
// count. Days with a single snapshot estimate 0. Keys are yyyy-mm-dd.
func DailyUptime(snaps []models.Snapshot) map[string]float64 {
	if len(snaps) == 0 {
		return nil
	}

	byDate := make(map[string][]models.Snapshot)
	for i := range snaps {
		key := dateKey(snaps[i].RecordedAt)
		byDate[key] = append(byDate[key], snaps[i])
	}

	result := make(map[string]float64, len(byDate))
	for date, list := range byDate {
		if len(list) < 2 {
			result[date] = 0
			continue
		}

		var totalGap, kept int64
		for i := 1; i < len(list); i++ {
			gap := int64(list[i].RecordedAt.Sub(list[i-1].RecordedAt) / time.Second)
			if gap > 0 && gap <= uptimeGapClipSeconds {
				totalGap += gap
				kept++
			}
		}

		avgGap := int64(uptimeDefaultGapSeconds)
		if kept > 0 {
			avgGap = totalGap / kept
		}

		uptimeSeconds := avgGap * int64(len(list))
		result[date] = roundHalfUp2(float64(uptimeSeconds) / 3600.0)
	}

	return result
}

// BuildDaySummaries rolls snapshots up into day summaries with hourly
// buckets. Hours within a day are ascending and unique; days are ascending
// and unique by date.
func BuildDaySummaries(snaps []models.Snapshot) []models.DaySummary {
	if len(snaps) == 0 {
		return nil
	}

	type dayGroup struct {
		hours map[int][]models.Snapshot
		all   []models.Snapshot
	}

	byDate := make(map[string]*dayGroup)
	for i := range snaps {
		key := dateKey(snaps[i].RecordedAt)
		group := byDate[key]
		if group == nil {
			group = &dayGroup{hours: make(map[int][]models.Snapshot)}
			byDate[key] = group
		}
		hour := snaps[i].RecordedAt.Hour()
		group.hours[hour] = append(group.hours[hour], snaps[i])
		group.all = append(group.all, snaps[i])
	}

	uptimeByDay := DailyUptime(snaps)

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]models.DaySummary, 0, len(dates))
	for _, date := range dates {
		group := byDate[date]

		hours := make([]int, 0, len(group.hours))
		for hour := range group.hours {
			hours = append(hours, hour)
		}
		sort.Ints(hours)

		hourStats := make([]models.HourStat, 0, len(hours))
		for _, hour := range hours {
			bucket := group.hours[hour]
			hourStats = append(hourStats, models.HourStat{
				Hour:   hour,
				AvgCpu: Average(bucket, CpuLoad),
				AvgRam: Average(bucket, RamUsedMb),
				Day:    date,
			})
		}

		days = append(days, models.DaySummary{
			Date:        date,
			Hours:       hourStats,
			UptimeHours: uptimeByDay[date],
			CpuAvg:      Average(group.all, CpuLoad),
			RamAvg:      Average(group.all, RamUsedMb),
			AppUsage:    AppUsagePercent(group.all),
		})
	}

	return days
}

// AverageUptime is the mean of DailyUptime values across days that have data,
// rounded half-up to 2 decimals. 0 if none.
func AverageUptime(snaps []models.Snapshot) float64 {
	daily := DailyUptime(snaps)
	if len(daily) == 0 {
		return 0
	}

	var sum float64
	for _, hours := range daily {
		sum += hours
	}
	return roundHalfUp2(sum / float64(len(daily)))
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// roundHalfUp2 rounds to 2 decimals with ties going up, matching how every
// stored statistic has historically been rounded.
func roundHalfUp2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
