package database

import (
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// ReportRepository handles persistence of generated reports. A report is
// stored as one row; the day summaries and app-usage histogram travel in
// JSON-serialized columns so the row round-trips as a unit.
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts a generated report.
func (r *ReportRepository) Save(report *models.Report) error {
	result := r.db.Create(report)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert report")
	}
	return nil
}

// FindByID retrieves a report by its ID, or nil if it does not exist.
func (r *ReportRepository) FindByID(id uint) (*models.Report, error) {
	var report models.Report
	result := r.db.First(&report, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get report")
	}
	return &report, nil
}

// FindByUser returns all reports belonging to a user, newest first.
func (r *ReportRepository) FindByUser(userID uint) ([]models.Report, error) {
	var reports []models.Report
	result := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query reports")
	}

	return reports, nil
}

// FindByUserAndPeriod returns a user's reports whose period falls entirely
// inside [start, end].
func (r *ReportRepository) FindByUserAndPeriod(userID uint, start, end time.Time) ([]models.Report, error) {
	var reports []models.Report
	result := r.db.
		Where("user_id = ? AND period_start >= ? AND period_end <= ?", userID, start, end).
		Order("period_start ASC").
		Find(&reports)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query reports by period")
	}

	return reports, nil
}

// DeleteByID removes a report.
func (r *ReportRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.Report{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete report")
	}
	return nil
}
