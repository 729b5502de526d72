package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/mlb-dashboard/internal/database"
	"github.com/yourusername/mlb-dashboard/internal/models"
)

// recentStatsQuery aggregates each team over its home games and its away games separately,
// then averages the two views per team and sums their game counts.
const recentStatsQuery = `
	WITH team_recent_performance AS (
		SELECT
			g.home_team_id AS team_id,
			AVG(CASE WHEN g.home_score > g.away_score THEN 1.0 ELSE 0.0 END) AS win_rate,
			AVG(g.home_score) AS avg_runs_scored,
			AVG(g.away_score) AS avg_runs_allowed,
			COUNT(*) AS games
		FROM games g
		WHERE g.home_team_id = ANY($1::int[])
		  AND g.official_date >= $2::date
		  AND g.status_detailed_state = $3
		GROUP BY g.home_team_id

		UNION ALL

		SELECT
			g.away_team_id AS team_id,
			AVG(CASE WHEN g.away_score > g.home_score THEN 1.0 ELSE 0.0 END) AS win_rate,
			AVG(g.away_score) AS avg_runs_scored,
			AVG(g.home_score) AS avg_runs_allowed,
			COUNT(*) AS games
		FROM games g
		WHERE g.away_team_id = ANY($1::int[])
		  AND g.official_date >= $2::date
		  AND g.status_detailed_state = $3
		GROUP BY g.away_team_id
	)
	SELECT
		team_id,
		AVG(win_rate)::float8 AS recent_win_rate,
		AVG(avg_runs_scored)::float8 AS recent_runs_scored,
		AVG(avg_runs_allowed)::float8 AS recent_runs_allowed,
		SUM(games)::int AS total_games
	FROM team_recent_performance
	GROUP BY team_id
	ORDER BY team_id
`

const upsertGameQuery = `
	INSERT INTO games (
		game_pk, official_date, game_date, game_type,
		home_team_id, home_team_name, away_team_id, away_team_name,
		home_score, away_score, venue_name, status_detailed_state
	)
	VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (game_pk) DO UPDATE SET
		official_date = EXCLUDED.official_date,
		game_date = EXCLUDED.game_date,
		home_score = EXCLUDED.home_score,
		away_score = EXCLUDED.away_score,
		venue_name = EXCLUDED.venue_name,
		status_detailed_state = EXCLUDED.status_detailed_state,
		updated_at = NOW()
`

// PostgresGameLogRepository implements GameLogRepository for PostgreSQL
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new game log repository
func NewPostgresGameLogRepository(db *database.DB) GameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// RecentStats aggregates recent home and away form per team
func (r *PostgresGameLogRepository) RecentStats(ctx context.Context, since time.Time, completedStatus string, teamIDs ...int) (map[int]*models.TeamRecentStats, error) {
	ids := make([]int32, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = int32(id)
	}

	rows, err := r.db.GetPool().Query(ctx, recentStatsQuery, ids, since, completedStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent team stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*models.TeamRecentStats, len(teamIDs))
	for rows.Next() {
		s := &models.TeamRecentStats{}
		if err := rows.Scan(&s.TeamID, &s.WinRate, &s.RunsScored, &s.RunsAllowed, &s.GamesPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan team stats: %w", err)
		}
		stats[s.TeamID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team stats: %w", err)
	}

	return stats, nil
}

// UpsertGames writes games in a single batch
func (r *PostgresGameLogRepository) UpsertGames(ctx context.Context, games []*models.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, g := range games {
		batch.Queue(upsertGameQuery,
			g.GamePK, g.OfficialDate, g.StartTime, g.GameType,
			g.HomeID, g.HomeTeam, g.AwayID, g.AwayTeam,
			g.HomeScore, g.AwayScore, g.Venue, g.Status,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for _, g := range games {
		if _, err := results.Exec(); err != nil {
			return written, fmt.Errorf("failed to upsert game %d: %w", g.GamePK, err)
		}
		written++
	}

	return written, nil
}

// GetByOfficialDate retrieves logged games for one date
func (r *PostgresGameLogRepository) GetByOfficialDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	query := `
		SELECT game_pk, to_char(official_date, 'YYYY-MM-DD'), game_date, game_type,
		       home_team_id, home_team_name, away_team_id, away_team_name,
		       home_score, away_score, COALESCE(venue_name, ''), status_detailed_state
		FROM games
		WHERE official_date = $1::date
		ORDER BY game_date ASC NULLS LAST, game_pk ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g := &models.Game{}
		err := rows.Scan(
			&g.GamePK, &g.OfficialDate, &g.StartTime, &g.GameType,
			&g.HomeID, &g.HomeTeam, &g.AwayID, &g.AwayTeam,
			&g.HomeScore, &g.AwayScore, &g.Venue, &g.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}

	return games, rows.Err()
}
