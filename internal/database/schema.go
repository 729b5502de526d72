package database

// GamesSchema is the DDL for the historical game log; migrations/001_create_games.sql mirrors it.
const GamesSchema = `
CREATE TABLE IF NOT EXISTS games (
    game_pk               BIGINT PRIMARY KEY,
    official_date         DATE NOT NULL,
    game_date             TIMESTAMPTZ,
    game_type             TEXT NOT NULL DEFAULT 'R',
    home_team_id          INTEGER NOT NULL,
    home_team_name        TEXT NOT NULL,
    away_team_id          INTEGER NOT NULL,
    away_team_name        TEXT NOT NULL,
    home_score            INTEGER,
    away_score            INTEGER,
    venue_name            TEXT,
    status_detailed_state TEXT NOT NULL,
    updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_games_home_recent ON games (home_team_id, official_date);
CREATE INDEX IF NOT EXISTS idx_games_away_recent ON games (away_team_id, official_date);
`
