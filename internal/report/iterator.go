package report

import (
	"github.com/Maksim2301/System-activity-monitor/internal/models"
)

// DeepIterator walks every hour bucket of a report's day summaries in order,
// lazily skipping days that have no hourly data. It only traverses what a
// report already contains; it never recomputes anything.
type DeepIterator struct {
	days    []models.DaySummary
	dayIdx  int
	hourIdx int
}

// NewDeepIterator creates an iterator over the report's day summaries.
// Call First before reading.
func NewDeepIterator(rep *models.Report) *DeepIterator {
	var days []models.DaySummary
	if rep != nil {
		days = rep.Days
	}
	return &DeepIterator{days: days}
}

// First positions at the first hour bucket of the first day that has one.
func (it *DeepIterator) First() {
	it.dayIdx = 0
	it.hourIdx = 0
	it.skipExhausted()
}

// Next advances to the next hour bucket, moving across day boundaries as
// needed. No-op once done.
func (it *DeepIterator) Next() {
	if it.IsDone() {
		return
	}
	it.hourIdx++
	it.skipExhausted()
}

// IsDone reports whether no further hour buckets remain.
func (it *DeepIterator) IsDone() bool {
	return it.dayIdx >= len(it.days)
}

// CurrentItem returns the current hour bucket, or nil when done.
func (it *DeepIterator) CurrentItem() *models.HourStat {
	if it.IsDone() {
		return nil
	}

	hours := it.days[it.dayIdx].Hours
	if it.hourIdx >= len(hours) {
		return nil
	}
	return &hours[it.hourIdx]
}

func (it *DeepIterator) skipExhausted() {
	for it.dayIdx < len(it.days) {
		hours := it.days[it.dayIdx].Hours
		if it.hourIdx < len(hours) {
			return
		}
		it.dayIdx++
		it.hourIdx = 0
	}
}
