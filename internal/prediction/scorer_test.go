package prediction

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-dashboard/internal/config"
	"github.com/yourusername/mlb-dashboard/internal/logger"
	"github.com/yourusername/mlb-dashboard/internal/models"
)

// MockStatsRepository mocks the recent stats repository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) RecentStats(ctx context.Context, since time.Time, completedStatus string, teamIDs ...int) (map[int]*models.TeamRecentStats, error) {
	args := m.Called(ctx, since, completedStatus, teamIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]*models.TeamRecentStats), args.Error(1)
}

const (
	homeID = 111
	awayID = 147
)

func testScorer(t *testing.T, repo StatsRepository) *Scorer {
	t.Helper()
	base := logrus.New()
	base.SetOutput(io.Discard)

	cfg := &config.Config{
		Predictor: config.PredictorConfig{
			SeasonStart:         "2025-04-01",
			CompletedStatus:     models.StatusFinal,
			QueryTimeoutSeconds: 5,
		},
	}
	scorer, err := NewScorer(repo, cfg, logger.NewPredictionLogger(base))
	require.NoError(t, err)
	return scorer
}

func testGame() *models.Game {
	return &models.Game{
		GamePK:   777001,
		AwayTeam: "New York Yankees",
		HomeTeam: "Boston Red Sox",
		AwayID:   awayID,
		HomeID:   homeID,
		Status:   "Scheduled",
	}
}

func TestCompute_ReferenceMatchup(t *testing.T) {
	home := models.TeamRecentStats{TeamID: homeID, WinRate: 0.55, RunsScored: 5.0, RunsAllowed: 4.0, GamesPlayed: 40}
	away := models.TeamRecentStats{TeamID: awayID, WinRate: 0.45, RunsScored: 4.2, RunsAllowed: 4.6, GamesPlayed: 38}

	pred, err := Compute(home, away, "Boston Red Sox", "New York Yankees")
	require.NoError(t, err)

	assert.InDelta(t, 0.545667, pred.HomeStrength, 1e-6)
	assert.InDelta(t, 0.464182, pred.AwayStrength, 1e-6)
	assert.InDelta(t, 57.07424, pred.HomeWinProb, 1e-4)
	assert.InDelta(t, 42.92576, pred.AwayWinProb, 1e-4)
	assert.Equal(t, "Boston Red Sox", pred.PredictedWinner)
	assert.InDelta(t, pred.HomeWinProb, pred.Confidence, 1e-9)
	assert.Equal(t, "0.550", pred.HomeRecord)
	assert.Equal(t, "0.450", pred.AwayRecord)
	assert.Equal(t, "40H, 38A", pred.DataGames)
	assert.Equal(t, models.ConfidenceLow, pred.Tier())
	assert.Equal(t, "57.1%", models.FormatPercent(pred.HomeWinProb))
}

func TestCompute_Clamping(t *testing.T) {
	strong := models.TeamRecentStats{WinRate: 1, RunsScored: 10, RunsAllowed: 1, GamesPlayed: 10}
	weak := models.TeamRecentStats{WinRate: 0, RunsScored: 1, RunsAllowed: 10, GamesPlayed: 10}

	t.Run("strong home team caps at upper bound", func(t *testing.T) {
		pred, err := Compute(strong, weak, "Home", "Away")
		require.NoError(t, err)
		assert.InDelta(t, 65.0, pred.HomeWinProb, 1e-9)
		assert.Equal(t, "Home", pred.PredictedWinner)
		assert.InDelta(t, 65.0, pred.Confidence, 1e-9)
		assert.Equal(t, models.ConfidenceHigh, pred.Tier())
	})

	t.Run("strong away team floors at lower bound", func(t *testing.T) {
		pred, err := Compute(weak, strong, "Home", "Away")
		require.NoError(t, err)
		assert.InDelta(t, 35.0, pred.HomeWinProb, 1e-9)
		assert.InDelta(t, 65.0, pred.AwayWinProb, 1e-9)
		assert.Equal(t, "Away", pred.PredictedWinner)
		assert.InDelta(t, 65.0, pred.Confidence, 1e-9)
	})
}

func TestCompute_Invariants(t *testing.T) {
	rates := []float64{0, 0.2, 0.5, 0.8, 1}
	runs := [][2]float64{{1, 9}, {4, 4}, {6, 3}, {9, 1}}

	for _, hw := range rates {
		for _, aw := range rates {
			for _, hr := range runs {
				for _, ar := range runs {
					home := models.TeamRecentStats{WinRate: hw, RunsScored: hr[0], RunsAllowed: hr[1], GamesPlayed: 5}
					away := models.TeamRecentStats{WinRate: aw, RunsScored: ar[0], RunsAllowed: ar[1], GamesPlayed: 5}

					pred, err := Compute(home, away, "H", "A")
					require.NoError(t, err)

					assert.GreaterOrEqual(t, pred.HomeWinProb, 35.0-1e-9)
					assert.LessOrEqual(t, pred.HomeWinProb, 65.0+1e-9)
					assert.InDelta(t, 100.0, pred.HomeWinProb+pred.AwayWinProb, 1e-9)
					assert.Equal(t, pred.HomeWinProb > 50, pred.PredictedWinner == "H")
					assert.InDelta(t, max(pred.HomeWinProb, pred.AwayWinProb), pred.Confidence, 1e-9)
					assert.GreaterOrEqual(t, pred.Confidence, 50.0)
				}
			}
		}
	}
}

func TestCompute_EqualFormFavoursHome(t *testing.T) {
	form := models.TeamRecentStats{WinRate: 0.5, RunsScored: 4, RunsAllowed: 4, GamesPlayed: 12}

	pred, err := Compute(form, form, "H", "A")
	require.NoError(t, err)

	assert.Equal(t, "H", pred.PredictedWinner)
	assert.InDelta(t, 53.9, pred.HomeWinProb, 1e-9)
}

func TestCompute_ZeroRuns(t *testing.T) {
	home := models.TeamRecentStats{WinRate: 0.5, RunsScored: 0, RunsAllowed: 0}
	away := models.TeamRecentStats{WinRate: 0.5, RunsScored: 4, RunsAllowed: 4}

	pred, err := Compute(home, away, "H", "A")
	assert.Nil(t, pred)
	assert.ErrorIs(t, err, models.ErrZeroRuns)
}

func TestScorer_Score(t *testing.T) {
	repo := new(MockStatsRepository)
	since := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	repo.On("RecentStats", mock.Anything, since, models.StatusFinal, []int{homeID, awayID}).Return(map[int]*models.TeamRecentStats{
		homeID: {TeamID: homeID, WinRate: 0.55, RunsScored: 5.0, RunsAllowed: 4.0, GamesPlayed: 40},
		awayID: {TeamID: awayID, WinRate: 0.45, RunsScored: 4.2, RunsAllowed: 4.6, GamesPlayed: 38},
	}, nil)

	pred := testScorer(t, repo).Score(context.Background(), testGame())

	require.NotNil(t, pred)
	assert.Equal(t, "Boston Red Sox", pred.PredictedWinner)
	assert.InDelta(t, 57.07424, pred.HomeWinProb, 1e-4)
	repo.AssertExpectations(t)
}

func TestScorer_Score_Absent(t *testing.T) {
	tests := []struct {
		name  string
		stats map[int]*models.TeamRecentStats
		err   error
	}{
		{
			name:  "no history",
			stats: map[int]*models.TeamRecentStats{},
		},
		{
			name: "only home team has history",
			stats: map[int]*models.TeamRecentStats{
				homeID: {TeamID: homeID, WinRate: 0.6, RunsScored: 5, RunsAllowed: 3, GamesPlayed: 10},
			},
		},
		{
			name: "rows for unrelated teams",
			stats: map[int]*models.TeamRecentStats{
				1: {TeamID: 1, WinRate: 0.6, RunsScored: 5, RunsAllowed: 3},
				2: {TeamID: 2, WinRate: 0.4, RunsScored: 3, RunsAllowed: 5},
			},
		},
		{
			name: "zero runs",
			stats: map[int]*models.TeamRecentStats{
				homeID: {TeamID: homeID, WinRate: 0, RunsScored: 0, RunsAllowed: 0, GamesPlayed: 1},
				awayID: {TeamID: awayID, WinRate: 1, RunsScored: 3, RunsAllowed: 1, GamesPlayed: 1},
			},
		},
		{
			name: "database unavailable",
			err:  errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockStatsRepository)
			if tt.err != nil {
				repo.On("RecentStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				repo.On("RecentStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tt.stats, nil)
			}

			pred := testScorer(t, repo).Score(context.Background(), testGame())
			assert.Nil(t, pred)
		})
	}
}

func TestScorer_ResultCorrectness(t *testing.T) {
	repo := new(MockStatsRepository)
	repo.On("RecentStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(map[int]*models.TeamRecentStats{
		homeID: {TeamID: homeID, WinRate: 0.55, RunsScored: 5.0, RunsAllowed: 4.0, GamesPlayed: 40},
		awayID: {TeamID: awayID, WinRate: 0.45, RunsScored: 4.2, RunsAllowed: 4.6, GamesPlayed: 38},
	}, nil)

	game := testGame()
	home, away := 7, 3
	game.Status = models.StatusFinal
	game.HomeScore = &home
	game.AwayScore = &away

	pred := testScorer(t, repo).Score(context.Background(), game)
	require.NotNil(t, pred)

	correct, final := pred.IsCorrect(game)
	assert.True(t, final)
	assert.True(t, correct)

	pred.PredictedWinner = game.AwayTeam
	correct, _ = pred.IsCorrect(game)
	assert.False(t, correct)
}

func TestNewScorer_InvalidSeasonStart(t *testing.T) {
	cfg := &config.Config{Predictor: config.PredictorConfig{SeasonStart: "April"}}
	_, err := NewScorer(new(MockStatsRepository), cfg, nil)
	assert.Error(t, err)
}
