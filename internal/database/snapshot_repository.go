package database

import (
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// SnapshotRepository handles persistence of metric snapshots.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository instance
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save inserts a new snapshot. Snapshots are append-only.
func (r *SnapshotRepository) Save(snap *models.Snapshot) error {
	result := r.db.Create(snap)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert snapshot")
	}
	return nil
}

// FindByUserAndRange returns a user's snapshots recorded inside [from, to],
// ordered by recording time ascending.
func (r *SnapshotRepository) FindByUserAndRange(userID uint, from, to time.Time) ([]models.Snapshot, error) {
	var snaps []models.Snapshot
	result := r.db.
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to).
		Order("recorded_at ASC").
		Find(&snaps)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query snapshots")
	}

	return snaps, nil
}

// GetLatest retrieves the most recent snapshot for a user, or nil if none.
func (r *SnapshotRepository) GetLatest(userID uint) (*models.Snapshot, error) {
	var snap models.Snapshot
	result := r.db.Where("user_id = ?", userID).Order("recorded_at DESC").First(&snap)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest snapshot")
	}
	return &snap, nil
}

// SaveErrorLog inserts a new error log entry.
func (r *SnapshotRepository) SaveErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}
