package report

import (
	"strings"
	"testing"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func snapAt(t time.Time, cpu *float64, ram *float64, window string) models.Snapshot {
	return models.Snapshot{
		RecordedAt:   t,
		CpuLoad:      cpu,
		RamUsedMb:    ram,
		ActiveWindow: window,
	}
}

func TestAverage(t *testing.T) {
	base := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		snaps []models.Snapshot
		want  float64
	}{
		{
			name:  "empty list",
			snaps: nil,
			want:  0,
		},
		{
			name: "all nil values",
			snaps: []models.Snapshot{
				snapAt(base, nil, nil, ""),
				snapAt(base, nil, nil, ""),
			},
			want: 0,
		},
		{
			name: "nil values are skipped",
			snaps: []models.Snapshot{
				snapAt(base, f64(10), nil, ""),
				snapAt(base, nil, nil, ""),
				snapAt(base, f64(20), nil, ""),
			},
			want: 15,
		},
		{
			name: "rounded to two decimals",
			snaps: []models.Snapshot{
				snapAt(base, f64(10), nil, ""),
				snapAt(base, f64(20), nil, ""),
				snapAt(base, f64(25), nil, ""),
			},
			want: 18.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Average(tt.snaps, CpuLoad))
		})
	}
}

func TestTotalIdle(t *testing.T) {
	d1 := int64(120)
	d2 := int64(30)

	intervals := []models.IdleInterval{
		{DurationSeconds: &d1},
		{DurationSeconds: nil}, // still open, contributes nothing
		{DurationSeconds: &d2},
	}

	assert.Equal(t, int64(150), TotalIdle(intervals))
	assert.Equal(t, int64(0), TotalIdle(nil))
}

func TestNormalizeAppLabel(t *testing.T) {
	longTitle := strings.Repeat("a", 45)

	tests := []struct {
		title string
		want  string
	}{
		{"", "Desktop"},
		{"Project - Google Chrome", "Google Chrome"},
		{"MOZILLA FIREFOX", "Mozilla Firefox"},
		{"report.docx - Word", "MS Word"},
		{"budget - Excel", "MS Excel"},
		{"app - IntelliJ IDEA", "IntelliJ IDEA"},
		{"Telegram (42)", "Telegram"},
		{"short title", "short title"},
		{longTitle, strings.Repeat("a", 40) + "..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAppLabel(tt.title), "title %q", tt.title)
	}
}

func TestAppUsagePercent(t *testing.T) {
	base := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	snaps := []models.Snapshot{
		snapAt(base, nil, nil, "tab one - Google Chrome"),
		snapAt(base, nil, nil, "Mozilla Firefox"),
		snapAt(base, nil, nil, "tab two - chrome"),
	}

	usage := AppUsagePercent(snaps)
	require.Len(t, usage, 2)

	// First-occurrence order.
	assert.Equal(t, "Google Chrome", usage[0].App)
	assert.Equal(t, 66.67, usage[0].Percent)
	assert.Equal(t, "Mozilla Firefox", usage[1].App)
	assert.Equal(t, 33.33, usage[1].Percent)

	assert.Nil(t, AppUsagePercent(nil))
}

func TestAppUsagePercentSumsToHundred(t *testing.T) {
	base := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	var snaps []models.Snapshot
	titles := []string{"chrome", "firefox", "telegram", "", "some editor", "chrome", "viber"}
	for _, title := range titles {
		snaps = append(snaps, snapAt(base, nil, nil, title))
	}

	var sum float64
	for _, u := range AppUsagePercent(snaps) {
		sum += u.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.05)
}

func TestDailyUptime(t *testing.T) {
	day := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	t.Run("single snapshot estimates zero", func(t *testing.T) {
		uptime := DailyUptime([]models.Snapshot{snapAt(day, nil, nil, "")})
		assert.Equal(t, 0.0, uptime["2024-03-11"])
	})

	t.Run("one minute cadence", func(t *testing.T) {
		var snaps []models.Snapshot
		for i := 0; i < 5; i++ {
			snaps = append(snaps, snapAt(day.Add(time.Duration(i)*time.Minute), nil, nil, ""))
		}

		// All gaps are 60s, within the clip: 60 * 5 = 300s = 0.08h.
		uptime := DailyUptime(snaps)
		assert.Equal(t, 0.08, uptime["2024-03-11"])
	})

	t.Run("gaps above clip fall back to default", func(t *testing.T) {
		snaps := []models.Snapshot{
			snapAt(day, nil, nil, ""),
			snapAt(day.Add(10*time.Minute), nil, nil, ""),
		}

		// No qualifying gap, so the 10s default applies: 10 * 2 = 20s.
		uptime := DailyUptime(snaps)
		assert.Equal(t, 0.01, uptime["2024-03-11"])
	})

	t.Run("bounded for same-day inputs", func(t *testing.T) {
		var snaps []models.Snapshot
		for i := 0; i < 200; i++ {
			snaps = append(snaps, snapAt(day.Add(time.Duration(i)*4*time.Minute), nil, nil, ""))
		}

		for date, hours := range DailyUptime(snaps) {
			assert.GreaterOrEqual(t, hours, 0.0, "date %s", date)
			assert.LessOrEqual(t, hours, 24.0, "date %s", date)
		}
	})

	assert.Nil(t, DailyUptime(nil))
}

func TestBuildDaySummaries(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	snaps := []models.Snapshot{
		snapAt(day.Add(9*time.Hour), f64(10), f64(1000), "chrome"),
		snapAt(day.Add(9*time.Hour+30*time.Minute), f64(20), f64(2000), "chrome"),
		snapAt(day.Add(10*time.Hour), f64(30), f64(3000), "firefox"),
		snapAt(day.Add(10*time.Hour+30*time.Minute), f64(40), f64(4000), "firefox"),
	}

	days := BuildDaySummaries(snaps)
	require.Len(t, days, 1)

	summary := days[0]
	assert.Equal(t, "2024-03-11", summary.Date)
	require.Len(t, summary.Hours, 2)

	assert.Equal(t, 9, summary.Hours[0].Hour)
	assert.Equal(t, 15.0, summary.Hours[0].AvgCpu)
	assert.Equal(t, 10, summary.Hours[1].Hour)
	assert.Equal(t, 35.0, summary.Hours[1].AvgCpu)

	assert.Equal(t, 25.0, summary.CpuAvg)
	assert.Equal(t, 2500.0, summary.RamAvg)

	// Hour buckets reference their day by key.
	for _, h := range summary.Hours {
		assert.Equal(t, summary.Date, h.Day)
	}

	require.Len(t, summary.AppUsage, 2)
	assert.Equal(t, "Google Chrome", summary.AppUsage[0].App)
	assert.Equal(t, 50.0, summary.AppUsage[0].Percent)
}

func TestBuildDaySummariesOrdering(t *testing.T) {
	dayOne := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	dayTwo := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	// Deliberately out of order.
	snaps := []models.Snapshot{
		snapAt(dayTwo.Add(14*time.Hour), f64(5), nil, ""),
		snapAt(dayOne.Add(17*time.Hour), f64(5), nil, ""),
		snapAt(dayOne.Add(8*time.Hour), f64(5), nil, ""),
		snapAt(dayTwo.Add(6*time.Hour), f64(5), nil, ""),
	}

	days := BuildDaySummaries(snaps)
	require.Len(t, days, 2)

	assert.Equal(t, "2024-03-11", days[0].Date)
	assert.Equal(t, "2024-03-12", days[1].Date)

	for _, d := range days {
		seen := make(map[int]bool)
		for i, h := range d.Hours {
			assert.False(t, seen[h.Hour], "duplicate hour %d on %s", h.Hour, d.Date)
			seen[h.Hour] = true
			if i > 0 {
				assert.Greater(t, h.Hour, d.Hours[i-1].Hour)
			}
		}
	}
}

func TestAverageUptime(t *testing.T) {
	assert.Equal(t, 0.0, AverageUptime(nil))

	dayOne := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	dayTwo := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)

	var snaps []models.Snapshot
	for i := 0; i < 5; i++ {
		snaps = append(snaps, snapAt(dayOne.Add(time.Duration(i)*time.Minute), nil, nil, ""))
	}
	snaps = append(snaps, snapAt(dayTwo, nil, nil, ""))

	// Day one estimates 0.08h, day two 0h: mean over both days.
	assert.Equal(t, 0.04, AverageUptime(snaps))
}
