package service

import (
	"fmt"
	"sync"
	"time"
)

// SyncMetrics tracks statistics about a game log sync run
type SyncMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	Dates            int
	GamesFetched     int
	FinalGames       int
	Upserted         int
	ValidationErrors int
	Errors           int
}

// NewSyncMetrics creates a new metrics tracker
func NewSyncMetrics() *SyncMetrics {
	return &SyncMetrics{
		StartTime: time.Now(),
	}
}

// Add folds the result of one date into the run totals
func (m *SyncMetrics) Add(result *SyncResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Dates++
	m.GamesFetched += result.Fetched
	m.FinalGames += result.Final
	m.Upserted += result.Upserted
	m.ValidationErrors += result.Rejected
}

// RecordError increments error count
func (m *SyncMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Finish records the total run duration
func (m *SyncMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// String returns a formatted string representation of metrics
func (m *SyncMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"SyncMetrics{Dates=%d, Fetched=%d, Final=%d, Upserted=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.Dates,
		m.GamesFetched,
		m.FinalGames,
		m.Upserted,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
