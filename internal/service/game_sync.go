// Package service contains the game log sync workflow.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/mlb-dashboard/internal/logger"
	"github.com/yourusername/mlb-dashboard/internal/metrics"
	"github.com/yourusername/mlb-dashboard/internal/models"
)

// ScheduleFetcher lists the games scheduled on a date
type ScheduleFetcher interface {
	FetchGames(ctx context.Context, date time.Time) ([]models.Game, error)
}

// GameWriter persists games into the historical game log
type GameWriter interface {
	UpsertGames(ctx context.Context, games []*models.Game) (int, error)
}

// SyncResult describes the outcome of syncing one date
type SyncResult struct {
	Date     string
	Fetched  int
	Final    int
	Upserted int
	Rejected int
}

// GameSync copies completed games from the schedule service into the game log
type GameSync struct {
	fetcher   ScheduleFetcher
	writer    GameWriter
	validator *GameValidator
	logger    *logger.SyncLogger
}

// NewGameSync creates a new sync service
func NewGameSync(fetcher ScheduleFetcher, writer GameWriter, log *logger.SyncLogger) *GameSync {
	return &GameSync{
		fetcher:   fetcher,
		writer:    writer,
		validator: NewGameValidator(),
		logger:    log,
	}
}

// SyncDate fetches the schedule for date and upserts its valid final games
func (s *GameSync) SyncDate(ctx context.Context, date time.Time) (*SyncResult, error) {
	result := &SyncResult{Date: date.Format("2006-01-02")}

	games, err := s.fetcher.FetchGames(ctx, date)
	if err != nil {
		metrics.RecordSyncRun(false, 0, 0)
		return result, fmt.Errorf("failed to fetch schedule for %s: %w", result.Date, err)
	}
	result.Fetched = len(games)

	batch := make([]*models.Game, 0, len(games))
	for i := range games {
		game := &games[i]
		if game.Status != models.StatusFinal {
			continue
		}
		result.Final++

		if err := s.validator.Validate(game); err != nil {
			result.Rejected++
			s.logger.LogGameRejected(game.GamePK, result.Date, err)
			continue
		}
		batch = append(batch, game)
	}

	if len(batch) > 0 {
		upserted, err := s.writer.UpsertGames(ctx, batch)
		if err != nil {
			metrics.RecordSyncRun(false, 0, result.Rejected)
			return result, fmt.Errorf("failed to write games for %s: %w", result.Date, err)
		}
		result.Upserted = upserted
	}

	metrics.RecordSyncRun(true, result.Upserted, result.Rejected)
	s.logger.LogDateSynced(result.Date, result.Fetched, result.Final, result.Upserted, result.Rejected)

	return result, nil
}

// SyncRange syncs every date from start to end inclusive. A failing date does not
// stop the run; all failures are returned joined.
func (s *GameSync) SyncRange(ctx context.Context, start, end time.Time) (*SyncMetrics, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	runMetrics := NewSyncMetrics()
	var errs []error

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := s.SyncDate(ctx, date)
		runMetrics.Add(result)
		if err != nil {
			runMetrics.RecordError()
			errs = append(errs, err)
		}
	}

	runMetrics.Finish()
	return runMetrics, errors.Join(errs...)
}
