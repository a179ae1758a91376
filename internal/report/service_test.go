package report

import (
	"testing"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/export"
	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotStore struct {
	snaps []models.Snapshot

	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeSnapshotStore) FindByUserAndRange(userID uint, from, to time.Time) ([]models.Snapshot, error) {
	f.gotFrom, f.gotTo = from, to
	return f.snaps, nil
}

type fakeIdleStore struct {
	intervals []models.IdleInterval
}

func (f *fakeIdleStore) FindByUserAndRange(userID uint, from, to time.Time) ([]models.IdleInterval, error) {
	return f.intervals, nil
}

type fakeReportStore struct {
	saved   []*models.Report
	reports map[uint]*models.Report
}

func (f *fakeReportStore) Save(rep *models.Report) error {
	rep.ID = uint(len(f.saved) + 1)
	f.saved = append(f.saved, rep)
	return nil
}

func (f *fakeReportStore) FindByID(id uint) (*models.Report, error) {
	return f.reports[id], nil
}

func (f *fakeReportStore) FindByUser(userID uint) ([]models.Report, error) {
	var out []models.Report
	for _, rep := range f.saved {
		if rep.UserID == userID {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (f *fakeReportStore) FindByUserAndPeriod(userID uint, start, end time.Time) ([]models.Report, error) {
	var out []models.Report
	for _, rep := range f.saved {
		if rep.UserID == userID && !rep.PeriodStart.Before(start) && !rep.PeriodEnd.After(end) {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (f *fakeReportStore) DeleteByID(id uint) error {
	delete(f.reports, id)
	return nil
}

func newTestService(snaps *fakeSnapshotStore, idles *fakeIdleStore, reports *fakeReportStore) *Service {
	if snaps == nil {
		snaps = &fakeSnapshotStore{}
	}
	if idles == nil {
		idles = &fakeIdleStore{}
	}
	if reports == nil {
		reports = &fakeReportStore{reports: make(map[uint]*models.Report)}
	}
	return NewService(snaps, idles, reports, "")
}

func TestGenerateRequiresUser(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	now := time.Now()

	_, _, err := svc.Generate(nil, "r", now, now, models.SectionFlags{})
	assert.ErrorIs(t, err, ErrNoUser)

	_, _, err = svc.Generate(&models.User{}, "r", now, now, models.SectionFlags{})
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestGenerateRejectsInvertedPeriod(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	user := &models.User{ID: 3}
	now := time.Now()

	_, _, err := svc.Generate(user, "r", now, now.Add(-24*time.Hour), models.SectionFlags{})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestGeneratePersistsAndReturnsPackage(t *testing.T) {
	day := time.Date(2024, 3, 11, 9, 0, 0, 0, time.Local)
	idle := int64(300)

	snaps := &fakeSnapshotStore{snaps: []models.Snapshot{
		snapAt(day, f64(10), f64(1000), "chrome"),
		snapAt(day.Add(time.Minute), f64(30), f64(3000), "chrome"),
	}}
	idles := &fakeIdleStore{intervals: []models.IdleInterval{{DurationSeconds: &idle}}}
	reports := &fakeReportStore{reports: make(map[uint]*models.Report)}

	svc := newTestService(snaps, idles, reports)
	user := &models.User{ID: 3}
	flags := models.SectionFlags{CpuRam: true, Idle: true}

	rep, pkg, err := svc.Generate(user, "march", day, day.Add(24*time.Hour), flags)
	require.NoError(t, err)
	require.NotNil(t, rep)
	require.NotNil(t, pkg)

	require.Len(t, reports.saved, 1)
	assert.Same(t, rep, reports.saved[0])
	assert.Equal(t, uint(3), rep.UserID)

	require.NotNil(t, rep.CpuAvg)
	assert.Equal(t, 20.0, *rep.CpuAvg)
	require.NotNil(t, pkg.IdleSeconds)
	assert.Equal(t, int64(300), *pkg.IdleSeconds)

	// Unselected sections stay absent even though data existed.
	assert.Nil(t, rep.Days)
	assert.Nil(t, rep.AppUsage)
}

func TestGenerateQueriesWholeDays(t *testing.T) {
	snaps := &fakeSnapshotStore{}
	svc := newTestService(snaps, nil, nil)
	user := &models.User{ID: 1}

	start := time.Date(2024, 3, 11, 14, 30, 0, 0, time.Local)
	end := time.Date(2024, 3, 12, 8, 15, 0, 0, time.Local)

	_, _, err := svc.Generate(user, "r", start, end, models.SectionFlags{})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), snaps.gotFrom)
	assert.Equal(t, time.Date(2024, 3, 12, 23, 59, 59, 0, time.Local), snaps.gotTo)
}

func TestListByUser(t *testing.T) {
	reports := &fakeReportStore{reports: make(map[uint]*models.Report)}
	require.NoError(t, reports.Save(&models.Report{UserID: 1, Name: "a"}))
	require.NoError(t, reports.Save(&models.Report{UserID: 2, Name: "b"}))

	svc := newTestService(nil, nil, reports)

	_, err := svc.ListByUser(nil)
	assert.ErrorIs(t, err, ErrNoUser)

	list, err := svc.ListByUser(&models.User{ID: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Name)
}

func TestListByPeriodValidation(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	now := time.Now()

	_, err := svc.ListByPeriod(&models.User{ID: 1}, now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.Export(&models.ExportPackage{Name: "r"}, "doc")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}
