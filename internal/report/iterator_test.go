package report

import (
	"testing"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iteratorReport() *models.Report {
	return &models.Report{
		Days: []models.DaySummary{
			{
				Date: "2024-03-11",
				Hours: []models.HourStat{
					{Hour: 9, Day: "2024-03-11"},
					{Hour: 10, Day: "2024-03-11"},
				},
			},
			{Date: "2024-03-12"}, // no hourly data
			{
				Date:  "2024-03-13",
				Hours: []models.HourStat{{Hour: 14, Day: "2024-03-13"}},
			},
		},
	}
}

func TestDeepIteratorWalksAllHours(t *testing.T) {
	it := NewDeepIterator(iteratorReport())

	var visited []int
	for it.First(); !it.IsDone(); it.Next() {
		item := it.CurrentItem()
		require.NotNil(t, item)
		visited = append(visited, item.Hour)
	}

	assert.Equal(t, []int{9, 10, 14}, visited)
	assert.Nil(t, it.CurrentItem())
}

func TestDeepIteratorSkipsEmptyDays(t *testing.T) {
	it := NewDeepIterator(iteratorReport())

	it.First()
	it.Next()
	it.Next()

	// The empty middle day is stepped over, never surfaced.
	item := it.CurrentItem()
	require.NotNil(t, item)
	assert.Equal(t, "2024-03-13", item.Day)
}

func TestDeepIteratorExhaustion(t *testing.T) {
	it := NewDeepIterator(iteratorReport())
	it.First()

	for i := 0; i < 3; i++ {
		it.Next()
	}
	assert.True(t, it.IsDone())

	// Further calls stay done and are harmless.
	it.Next()
	assert.True(t, it.IsDone())
	assert.Nil(t, it.CurrentItem())
}

func TestDeepIteratorRestart(t *testing.T) {
	it := NewDeepIterator(iteratorReport())

	it.First()
	it.Next()
	it.Next()
	it.Next()
	require.True(t, it.IsDone())

	it.First()
	require.False(t, it.IsDone())
	assert.Equal(t, 9, it.CurrentItem().Hour)
}

func TestDeepIteratorEmpty(t *testing.T) {
	for _, rep := range []*models.Report{nil, {}, {Days: []models.DaySummary{{Date: "2024-03-11"}}}} {
		it := NewDeepIterator(rep)
		it.First()
		assert.True(t, it.IsDone())
		assert.Nil(t, it.CurrentItem())
	}
}
