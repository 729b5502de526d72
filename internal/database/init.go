package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/mlb-dashboard/internal/config"
)

// Initialize creates a database connection pool and verifies the game log table exists
func Initialize(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = db.pool.QueryRow(ctx, "SELECT to_regclass('public.games') IS NOT NULL").Scan(&exists)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}

	if !exists {
		// Predictions degrade to "insufficient data" until the table is created and synced.
		log.Warn("games table not found; apply migrations/001_create_games.sql and run sync")
		return db, nil
	}

	var finalGames int64
	err = db.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM games WHERE status_detailed_state = $1", cfg.Predictor.CompletedStatus,
	).Scan(&finalGames)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to count completed games: %w", err)
	}

	log.WithField("completed_games", finalGames).Info("Game log available")
	return db, nil
}
