// Package prediction derives matchup win probabilities from recent team form.
package prediction

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yourusername/mlb-dashboard/internal/config"
	"github.com/yourusername/mlb-dashboard/internal/logger"
	"github.com/yourusername/mlb-dashboard/internal/metrics"
	"github.com/yourusername/mlb-dashboard/internal/models"
)

// Strength weights and field bias
const (
	WinRateWeight  = 0.4
	RunShareWeight = 0.3
	BiasWeight     = 0.3

	HomeBias = 0.53
	AwayBias = 0.47

	BaseHomeProbability = 0.53
	StrengthScale       = 0.5
	MinHomeProbability  = 0.35
	MaxHomeProbability  = 0.65
)

// StatsRepository supplies aggregated recent stats for a set of teams
type StatsRepository interface {
	RecentStats(ctx context.Context, since time.Time, completedStatus string, teamIDs ...int) (map[int]*models.TeamRecentStats, error)
}

// Scorer produces predictions for scheduled games
type Scorer struct {
	repo            StatsRepository
	since           time.Time
	completedStatus string
	timeout         time.Duration
	logger          *logger.PredictionLogger
}

// NewScorer creates a scorer reading form since the configured season start
func NewScorer(repo StatsRepository, cfg *config.Config, log *logger.PredictionLogger) (*Scorer, error) {
	since, err := cfg.GetSeasonStart()
	if err != nil {
		return nil, fmt.Errorf("invalid season start: %w", err)
	}

	return &Scorer{
		repo:            repo,
		since:           since,
		completedStatus: cfg.Predictor.CompletedStatus,
		timeout:         cfg.GetQueryTimeout(),
		logger:          log,
	}, nil
}

// Score returns the prediction for game, or nil when one cannot be produced.
// Failures are logged and never returned.
func (s *Scorer) Score(ctx context.Context, game *models.Game) *models.Prediction {
	start := time.Now()
	pred, err := s.score(ctx, game)
	metrics.RecordPrediction(err == nil, time.Since(start).Seconds())

	if err != nil {
		s.logger.LogPredictionUnavailable(game.HomeID, game.AwayID, err)
		return nil
	}

	s.logger.LogPrediction(game.GamePK, game.HomeTeam, game.AwayTeam, pred.PredictedWinner,
		pred.HomeWinProb, pred.HomeStrength, pred.AwayStrength)
	return pred
}

func (s *Scorer) score(ctx context.Context, game *models.Game) (*models.Prediction, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stats, err := s.repo.RecentStats(ctx, s.since, s.completedStatus, game.HomeID, game.AwayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent stats: %w", err)
	}

	if len(stats) < 2 {
		return nil, models.ErrInsufficientData
	}
	home, ok := stats[game.HomeID]
	if !ok {
		return nil, models.ErrInsufficientData
	}
	away, ok := stats[game.AwayID]
	if !ok {
		return nil, models.ErrInsufficientData
	}

	return Compute(*home, *away, game.HomeTeam, game.AwayTeam)
}

// Compute derives a prediction from two teams' aggregated recent stats
func Compute(home, away models.TeamRecentStats, homeName, awayName string) (*models.Prediction, error) {
	homeStrength, err := Strength(home, HomeBias)
	if err != nil {
		return nil, fmt.Errorf("home team %d: %w", home.TeamID, err)
	}
	awayStrength, err := Strength(away, AwayBias)
	if err != nil {
		return nil, fmt.Errorf("away team %d: %w", away.TeamID, err)
	}

	homeProb := HomeWinProbability(homeStrength, awayStrength)
	if !isFinite(homeProb) {
		return nil, models.ErrInvalidProbability
	}
	awayProb := 1 - homeProb

	winner := awayName
	if homeProb > 0.5 {
		winner = homeName
	}

	return &models.Prediction{
		PredictedWinner: winner,
		Confidence:      math.Max(homeProb, awayProb) * 100,
		HomeWinProb:     homeProb * 100,
		AwayWinProb:     awayProb * 100,
		HomeRecord:      models.FormatRate(home.WinRate),
		AwayRecord:      models.FormatRate(away.WinRate),
		DataGames:       models.FormatSampleSize(home.GamesPlayed, away.GamesPlayed),
		HomeStrength:    homeStrength,
		AwayStrength:    awayStrength,
	}, nil
}

// Strength combines win rate, run share and field bias into a single score
func Strength(stats models.TeamRecentStats, bias float64) (float64, error) {
	if !isFinite(stats.WinRate) || !isFinite(stats.RunsScored) || !isFinite(stats.RunsAllowed) {
		return 0, models.ErrInvalidProbability
	}

	runShare, err := stats.RunShare()
	if err != nil {
		return 0, err
	}

	return WinRateWeight*stats.WinRate + RunShareWeight*runShare + BiasWeight*bias, nil
}

// HomeWinProbability maps the strength difference onto a clamped home win probability
func HomeWinProbability(homeStrength, awayStrength float64) float64 {
	p := BaseHomeProbability + StrengthScale*(homeStrength-awayStrength)
	return math.Max(MinHomeProbability, math.Min(MaxHomeProbability, p))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
