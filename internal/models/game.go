package models

import (
	"time"
)

// StatusFinal is the detailed game state the schedule service reports for completed games.
const StatusFinal = "Final"

// GameTypeRegularSeason is the schedule service's game type code for regular-season games.
const GameTypeRegularSeason = "R"

// Game represents a scheduled MLB game as returned by the schedule service
type Game struct {
	GamePK       int64      `db:"game_pk" json:"game_pk" validate:"required,gt=0"`
	OfficialDate string     `db:"official_date" json:"official_date" validate:"required,datetime=2006-01-02"`
	GameType     string     `db:"game_type" json:"game_type"`
	AwayTeam     string     `db:"away_team_name" json:"away_team" validate:"required"`
	HomeTeam     string     `db:"home_team_name" json:"home_team" validate:"required"`
	AwayID       int        `db:"away_team_id" json:"away_id" validate:"required,gt=0,nefield=HomeID"`
	HomeID       int        `db:"home_team_id" json:"home_id" validate:"required,gt=0"`
	AwayScore    *int       `db:"away_score" json:"away_score,omitempty" validate:"omitempty,gte=0"`
	HomeScore    *int       `db:"home_score" json:"home_score,omitempty" validate:"omitempty,gte=0"`
	Venue        string     `db:"venue_name" json:"venue"`
	Status       string     `db:"status_detailed_state" json:"status" validate:"required"`
	GameTime     string     `json:"game_time"` // raw ISO-8601 start timestamp
	StartTime    *time.Time `db:"game_date" json:"start_time,omitempty"`
}

// IsFinal checks if the game is completed and both scores are known
func (g *Game) IsFinal() bool {
	return g.Status == StatusFinal && g.HomeScore != nil && g.AwayScore != nil
}

// ActualWinner returns the name of the winning team for a final game.
// Ties go to the away team, matching how the dashboard reports them.
func (g *Game) ActualWinner() (string, bool) {
	if !g.IsFinal() {
		return "", false
	}
	if *g.HomeScore > *g.AwayScore {
		return g.HomeTeam, true
	}
	return g.AwayTeam, true
}

// Matchup returns the "Away @ Home" header for the game
func (g *Game) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}
