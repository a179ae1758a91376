// Package monitor owns the sampling schedule: a fast tick that only checks
// warning thresholds and a slow tick that persists snapshots against the
// active user.
package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/config"
	"github.com/Maksim2301/System-activity-monitor/internal/metrics"
	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"
)

// Warning thresholds evaluated on every fast tick.
const (
	cpuWarnPercent      = 90.0
	ramWarnPercent      = 85.0
	diskFreeWarnPercent = 10.0
)

// SnapshotStore is the persistence surface the slow tick needs.
type SnapshotStore interface {
	Save(snap *models.Snapshot) error
	SaveErrorLog(errorLog *models.ErrorLog) error
}

// Service runs the two periodic sampling tasks. Start and Stop are the only
// synchronous control points; both are idempotent and neither blocks on an
// in-flight tick.
type Service struct {
	cfg      *config.Config
	provider metrics.Provider
	store    SnapshotStore

	mu     sync.Mutex
	active bool
	user   *models.User
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a sampling scheduler. A nil user at Start means guest
// mode: warnings are still evaluated but nothing is persisted.
func NewService(cfg *config.Config, provider metrics.Provider, store SnapshotStore) *Service {
	return &Service{
		cfg:      cfg,
		provider: provider,
		store:    store,
	}
}

// Start launches the fast and slow tick loops and enables input-activity
// counting. Calling Start while already active is a no-op.
func (s *Service) Start(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}
	s.active = true
	s.user = user

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.provider.StartInputMonitoring()

	s.wg.Add(2)
	go s.loop(ctx, s.cfg.Monitor.FastInterval, s.tickFast)
	go s.loop(ctx, s.cfg.Monitor.SlowInterval, s.tickSlow)

	if user != nil {
		log.Printf("Monitoring started for user %d (fast %v, slow %v)",
			user.ID, s.cfg.Monitor.FastInterval, s.cfg.Monitor.SlowInterval)
	} else {
		log.Printf("Monitoring started in guest mode (fast %v, slow %v)",
			s.cfg.Monitor.FastInterval, s.cfg.Monitor.SlowInterval)
	}
}

// Stop cancels both tick loops and disables input-activity counting. Calling
// Stop while inactive is a no-op. An in-flight tick finishes on its own but
// its result is discarded.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.active = false
	s.user = nil
	s.cancel()
	s.cancel = nil

	s.provider.StopInputMonitoring()

	log.Println("Monitoring stopped")
}

// Wait blocks until both tick loops have exited after Stop.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Active reports whether the schedule is running.
func (s *Service) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Service) state() (bool, *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.user
}

func (s *Service) loop(ctx context.Context, interval time.Duration, tick func() error) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.safeTick(tick)
		}
	}
}

// safeTick isolates a single tick: a panic or error is reported and the
// schedule keeps running.
func (s *Service) safeTick(tick func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in scheduled tick: %v", r)
		}
	}()

	if err := tick(); err != nil {
		s.reportTickError(err)
	}
}

func (s *Service) reportTickError(err error) {
	errorLog := &models.ErrorLog{
		Timestamp: time.Now(),
		ErrorMsg:  err.Error(),
	}

	if dbErr := s.store.SaveErrorLog(errorLog); dbErr != nil {
		log.Printf("Failed to store tick error: %v (original error: %v)", dbErr, err)
	} else {
		log.Printf("Tick failed: %v", err)
	}
}

// tickFast takes one reading and surfaces threshold warnings. Never persists.
func (s *Service) tickFast() error {
	active, _ := s.state()
	if !active {
		return nil
	}

	reading, err := s.provider.Snapshot()
	if err != nil {
		return errors.Wrap(err, "failed to take snapshot")
	}

	logWarnings(reading)
	return nil
}

// tickSlow takes one reading and persists it against the active user. No-op
// in guest mode.
func (s *Service) tickSlow() error {
	active, user := s.state()
	if !active || user == nil {
		return nil
	}

	reading, err := s.provider.Snapshot()
	if err != nil {
		return errors.Wrap(err, "failed to take snapshot")
	}

	// Stop may have raced the collection; a stale reading is discarded.
	if active, _ := s.state(); !active {
		return nil
	}

	snap := snapshotFromReading(reading, user.ID)
	if err := s.store.Save(snap); err != nil {
		return errors.Wrap(err, "failed to persist snapshot")
	}
	return nil
}

// SaveNow persists one immediate snapshot outside the cadence. Guest mode is
// a logged no-op.
func (s *Service) SaveNow(user *models.User) error {
	if user == nil {
		log.Println("Guest mode, snapshot not saved")
		return nil
	}

	reading, err := s.provider.Snapshot()
	if err != nil {
		return errors.Wrap(err, "failed to take snapshot")
	}

	snap := snapshotFromReading(reading, user.ID)
	if err := s.store.Save(snap); err != nil {
		return errors.Wrap(err, "failed to persist snapshot")
	}
	return nil
}

// CurrentStats takes one synchronous reading for status surfaces.
func (s *Service) CurrentStats() (metrics.Reading, error) {
	return s.provider.Snapshot()
}

func snapshotFromReading(r metrics.Reading, userID uint) *models.Snapshot {
	return &models.Snapshot{
		UserID:              userID,
		RecordedAt:          r.RecordedAt,
		CpuLoad:             r.CpuLoad,
		RamUsedMb:           r.RamUsedMb,
		RamTotalMb:          r.RamTotalMb,
		DiskTotalGb:         r.DiskTotalGb,
		DiskFreeGb:          r.DiskFreeGb,
		DiskUsedGb:          r.DiskUsedGb,
		DiskDetail:          r.DiskDetail,
		ActiveWindow:        r.ActiveWindow,
		SystemUptimeSeconds: r.SystemUptimeSeconds,
		KeyPresses:          r.KeyPresses,
		MouseClicks:         r.MouseClicks,
		MouseMoves:          r.MouseMoves,
	}
}

func logWarnings(r metrics.Reading) {
	if r.CpuLoad != nil && *r.CpuLoad > cpuWarnPercent {
		log.Printf("High CPU load (%.2f%%)", *r.CpuLoad)
	}

	if r.RamUsedMb != nil && r.RamTotalMb != nil && *r.RamTotalMb > 0 {
		percent := *r.RamUsedMb / *r.RamTotalMb * 100
		if percent > ramWarnPercent {
			log.Printf("High RAM usage (%.2f%%)", percent)
		}
	}

	if r.DiskFreeGb != nil && r.DiskTotalGb != nil && *r.DiskTotalGb > 0 {
		freePercent := *r.DiskFreeGb / *r.DiskTotalGb * 100
		if freePercent < diskFreeWarnPercent {
			log.Printf("Not enough disk space (%.2f%% free)", freePercent)
		}
	}
}
