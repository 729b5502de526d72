// Package scheduler runs the periodic game log sync.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-dashboard/internal/service"
)

// RangeSyncer syncs an inclusive range of dates into the game log
type RangeSyncer interface {
	SyncRange(ctx context.Context, start, end time.Time) (*service.SyncMetrics, error)
}

// Scheduler manages scheduled game log sync jobs
type Scheduler struct {
	cron            *cron.Cron
	syncer          RangeSyncer
	location        *time.Location
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
	now             func() time.Time
}

// NewScheduler creates a new scheduler evaluating cron expressions in loc
func NewScheduler(syncer RangeSyncer, loc *time.Location, logger *logrus.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(loc)),
		syncer:          syncer,
		location:        loc,
		logger:          logger.WithField("component", "scheduler"),
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      30 * time.Minute,
		gracefulTimeout: 30 * time.Second,
		now:             time.Now,
	}
}

// SyncWindow returns the dates a sync run covers: the lookbackDays days before
// today, or just today when lookbackDays is zero.
func SyncWindow(now time.Time, loc *time.Location, lookbackDays int) (time.Time, time.Time) {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if lookbackDays <= 0 {
		return today, today
	}
	return today.AddDate(0, 0, -lookbackDays), today.AddDate(0, 0, -1)
}

// RunSync performs one sync over the lookback window
func (s *Scheduler) RunSync(ctx context.Context, lookbackDays int) error {
	start, end := SyncWindow(s.now(), s.location, lookbackDays)

	s.logger.WithFields(logrus.Fields{
		"from": start.Format("2006-01-02"),
		"to":   end.Format("2006-01-02"),
	}).Info("Starting scheduled game log sync")

	runMetrics, err := s.syncer.SyncRange(ctx, start, end)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled game log sync finished with errors")
		return err
	}

	s.logger.WithField("metrics", runMetrics.String()).Info("Scheduled game log sync completed")
	return nil
}

// ScheduleGameLogSync schedules the game log sync job
func (s *Scheduler) ScheduleGameLogSync(cronExpression string, lookbackDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		_ = s.RunSync(ctx, lookbackDays)
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled game log sync job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	s.isRunning = false

	select {
	case <-stopCtx.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %v", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
