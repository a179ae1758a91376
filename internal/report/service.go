package report

import (
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/export"
	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"
)

var (
	// ErrNoUser is returned when a report operation lacks a saved identity.
	ErrNoUser = errors.New("report operations require an authenticated user")

	// ErrInvalidPeriod is returned when the period end precedes its start.
	ErrInvalidPeriod = errors.New("period end is before period start")
)

// SnapshotStore supplies the snapshots a report aggregates over.
type SnapshotStore interface {
	FindByUserAndRange(userID uint, from, to time.Time) ([]models.Snapshot, error)
}

// IdleStore supplies the idle intervals a report aggregates over.
type IdleStore interface {
	FindByUserAndRange(userID uint, from, to time.Time) ([]models.IdleInterval, error)
}

// ReportStore persists generated reports.
type ReportStore interface {
	Save(rep *models.Report) error
	FindByID(id uint) (*models.Report, error)
	FindByUser(userID uint) ([]models.Report, error)
	FindByUserAndPeriod(userID uint, start, end time.Time) ([]models.Report, error)
	DeleteByID(id uint) error
}

// Service orchestrates report generation, lookup and export. It holds no
// state between calls; concurrent generations for different users or periods
// never interfere.
type Service struct {
	snapshots SnapshotStore
	idles     IdleStore
	reports   ReportStore
	exportDir string
}

// NewService creates a report service. An empty exportDir resolves to the
// user's download directory at render time.
func NewService(snapshots SnapshotStore, idles IdleStore, reports ReportStore, exportDir string) *Service {
	return &Service{
		snapshots: snapshots,
		idles:     idles,
		reports:   reports,
		exportDir: exportDir,
	}
}

// Generate aggregates the user's data over [start, end] (whole days, local
// time), projects it through the section flags, persists the report and
// returns it together with its export package.
func (s *Service) Generate(user *models.User, name string, start, end time.Time, flags models.SectionFlags) (*models.Report, *models.ExportPackage, error) {
	if err := validateUser(user); err != nil {
		return nil, nil, err
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, nil, err
	}

	from := startOfDay(start)
	to := endOfDay(end)

	snaps, err := s.snapshots.FindByUserAndRange(user.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	intervals, err := s.idles.FindByUserAndRange(user.ID, from, to)
	if err != nil {
		return nil, nil, err
	}

	agg := ComputeAggregates(snaps, intervals)
	rep, pkg := Project(user.ID, name, start, end, agg, flags)

	if err := s.reports.Save(rep); err != nil {
		return nil, nil, err
	}
	return rep, pkg, nil
}

// FindByID returns a stored report, or nil if it does not exist.
func (s *Service) FindByID(id uint) (*models.Report, error) {
	return s.reports.FindByID(id)
}

// ListByUser returns all of the user's stored reports.
func (s *Service) ListByUser(user *models.User) ([]models.Report, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	return s.reports.FindByUser(user.ID)
}

// ListByPeriod returns the user's reports whose period lies inside
// [start, end].
func (s *Service) ListByPeriod(user *models.User, start, end time.Time) ([]models.Report, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	return s.reports.FindByUserAndPeriod(user.ID, start, end)
}

// Delete removes a stored report.
func (s *Service) Delete(id uint) error {
	return s.reports.DeleteByID(id)
}

// Export renders an export package in the requested format and returns the
// written file's path. Unknown format keys are a caller error.
func (s *Service) Export(pkg *models.ExportPackage, format string) (string, error) {
	renderer, err := export.ForFormat(format, s.exportDir)
	if err != nil {
		return "", err
	}
	return renderer.Render(pkg)
}

func validateUser(user *models.User) error {
	if !user.Saved() {
		return ErrNoUser
	}
	return nil
}

func validatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidPeriod
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
