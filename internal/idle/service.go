// Package idle tracks per-user offline periods as a two-state machine:
// a user is Online while they have no open interval and Offline while
// exactly one open interval exists.
package idle

import (
	"log"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"
)

// ErrNoUser is returned when an idle operation is attempted without a saved
// user identity. Guests are not idle-tracked.
var ErrNoUser = errors.New("idle tracking requires an authenticated user")

// Store is the persistence surface the state machine needs.
type Store interface {
	Save(interval *models.IdleInterval) error
	FindOpenByUser(userID uint) (*models.IdleInterval, error)
	FindByUserAndRange(userID uint, from, to time.Time) ([]models.IdleInterval, error)
}

// Service transitions users between Online and Offline.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates an idle tracking service.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// StartIdle transitions Online -> Offline by opening a new interval. If the
// user is already Offline the existing open interval is returned unchanged;
// repeated starts never create a second open interval.
func (s *Service) StartIdle(user *models.User) (*models.IdleInterval, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}

	open, err := s.store.FindOpenByUser(user.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}

	interval := &models.IdleInterval{
		UserID:    user.ID,
		StartTime: s.now(),
	}
	if err := s.store.Save(interval); err != nil {
		return nil, err
	}

	log.Printf("User %d went offline at %s", user.ID, interval.StartTime.Format(time.RFC3339))
	return interval, nil
}

// EndIdle transitions Offline -> Online by closing the open interval and
// returning it. If the user is already Online there is nothing to close and
// (nil, nil) is returned; that is a signal, not a failure.
func (s *Service) EndIdle(user *models.User) (*models.IdleInterval, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}

	open, err := s.store.FindOpenByUser(user.ID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}

	end := s.now()
	duration := int64(end.Sub(open.StartTime) / time.Second)
	if duration < 0 {
		duration = 0
	}

	open.EndTime = &end
	open.DurationSeconds = &duration

	if err := s.store.Save(open); err != nil {
		return nil, err
	}

	log.Printf("User %d back online after %ds offline", user.ID, duration)
	return open, nil
}

// IsIdleActive reports whether the user currently has an open interval.
func (s *Service) IsIdleActive(user *models.User) (bool, error) {
	interval, err := s.ActiveIdle(user)
	if err != nil {
		return false, err
	}
	return interval != nil, nil
}

// ActiveIdle returns the user's open interval, or nil while Online.
func (s *Service) ActiveIdle(user *models.User) (*models.IdleInterval, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	return s.store.FindOpenByUser(user.ID)
}

func validateUser(user *models.User) error {
	if !user.Saved() {
		return ErrNoUser
	}
	return nil
}
