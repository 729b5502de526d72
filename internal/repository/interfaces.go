package repository

import (
	"context"
	"time"

	"github.com/yourusername/mlb-dashboard/internal/models"
)

// GameLogRepository defines data access for the historical game log
type GameLogRepository interface {
	// RecentStats aggregates recent performance for the given teams from completed games
	// on or after since. Teams without qualifying games are absent from the result.
	RecentStats(ctx context.Context, since time.Time, completedStatus string, teamIDs ...int) (map[int]*models.TeamRecentStats, error)
	// UpsertGames inserts or updates games keyed by game_pk and returns the number written
	UpsertGames(ctx context.Context, games []*models.Game) (int, error)
	// GetByOfficialDate returns logged games for one official date ordered by start time
	GetByOfficialDate(ctx context.Context, date time.Time) ([]*models.Game, error)
}
