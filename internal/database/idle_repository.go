package database

import (
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// IdleRepository handles persistence of idle intervals.
type IdleRepository struct {
	db *DB
}

// NewIdleRepository creates a new idle repository instance
func NewIdleRepository(db *DB) *IdleRepository {
	return &IdleRepository{db: db}
}

// Save inserts a new interval or updates an existing one. Closing an open
// interval goes through here exactly once.
func (r *IdleRepository) Save(interval *models.IdleInterval) error {
	result := r.db.Save(interval)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save idle interval")
	}
	return nil
}

// FindOpenByUser returns the user's open interval (end_time IS NULL), or nil
// if the user is online.
func (r *IdleRepository) FindOpenByUser(userID uint) (*models.IdleInterval, error) {
	var interval models.IdleInterval
	result := r.db.
		Where("user_id = ? AND end_time IS NULL", userID).
		Order("start_time ASC").
		First(&interval)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to query open idle interval")
	}
	return &interval, nil
}

// FindByUserAndRange returns intervals that started inside [from, to].
func (r *IdleRepository) FindByUserAndRange(userID uint, from, to time.Time) ([]models.IdleInterval, error) {
	var intervals []models.IdleInterval
	result := r.db.
		Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, from, to).
		Order("start_time ASC").
		Find(&intervals)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query idle intervals")
	}

	return intervals, nil
}

// DeleteByID removes a single interval. Intervals are otherwise never deleted.
func (r *IdleRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.IdleInterval{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete idle interval")
	}
	return nil
}
