package models

// TeamRecentStats is a team's recent performance aggregated from the game log
type TeamRecentStats struct {
	TeamID      int     `db:"team_id" json:"team_id"`
	WinRate     float64 `db:"recent_win_rate" json:"win_rate"`
	RunsScored  float64 `db:"recent_runs_scored" json:"runs_scored"`
	RunsAllowed float64 `db:"recent_runs_allowed" json:"runs_allowed"`
	GamesPlayed int     `db:"total_games" json:"games_played"`
}

// RunShare returns the fraction of runs in the team's games that the team scored
func (s *TeamRecentStats) RunShare() (float64, error) {
	total := s.RunsScored + s.RunsAllowed
	if total == 0 {
		return 0, ErrZeroRuns
	}
	return s.RunsScored / total, nil
}
