// Package logger provides prediction-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for fetch-and-score passes.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogScheduleFetch logs the outcome of a schedule request.
func (pl *PredictionLogger) LogScheduleFetch(passID, date string, gamesFound int, durationMs float64, err error) {
	entry := pl.WithFields(logrus.Fields{
		"pass_id":     passID,
		"date":        date,
		"games_found": gamesFound,
		"duration_ms": durationMs,
	})
	if err != nil {
		entry.WithError(err).Warn("Schedule fetch failed")
		return
	}
	entry.Info("Schedule fetched")
}

// LogPrediction logs a produced prediction.
func (pl *PredictionLogger) LogPrediction(gamePK int64, homeTeam, awayTeam, winner string, homeWinProb, homeStrength, awayStrength float64) {
	pl.WithFields(logrus.Fields{
		"game_pk":       gamePK,
		"home_team":     homeTeam,
		"away_team":     awayTeam,
		"winner":        winner,
		"home_win_prob": homeWinProb,
		"home_strength": homeStrength,
		"away_strength": awayStrength,
	}).Debug("Prediction generated")
}

// LogPredictionUnavailable logs why no prediction was produced for a matchup.
func (pl *PredictionLogger) LogPredictionUnavailable(homeID, awayID int, reason error) {
	pl.WithFields(logrus.Fields{
		"home_id": homeID,
		"away_id": awayID,
		"reason":  reason.Error(),
	}).Info("Prediction unavailable")
}

// LogPassSummary logs the summary of a completed fetch-and-score pass.
func (pl *PredictionLogger) LogPassSummary(passID, date string, totalGames, predictions int, yieldRate, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"pass_id":     passID,
		"date":        date,
		"total_games": totalGames,
		"predictions": predictions,
		"yield_rate":  yieldRate,
		"duration_ms": durationMs,
	}).Info("Prediction pass completed")
}
