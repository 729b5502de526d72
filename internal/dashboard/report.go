// Package dashboard builds and renders daily prediction reports.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/mlb-dashboard/internal/logger"
	"github.com/yourusername/mlb-dashboard/internal/metrics"
	"github.com/yourusername/mlb-dashboard/internal/models"
)

// NoGamesNotice is shown when the schedule has no regular-season games for a date
const NoGamesNotice = "No games found for this date"

// ScheduleFetcher lists the games scheduled on a date
type ScheduleFetcher interface {
	FetchGames(ctx context.Context, date time.Time) ([]models.Game, error)
}

// MatchupScorer predicts a single game; nil means no prediction is available
type MatchupScorer interface {
	Score(ctx context.Context, game *models.Game) *models.Prediction
}

// GameView is one game merged with its prediction
type GameView struct {
	Game       models.Game        `json:"game"`
	Prediction *models.Prediction `json:"prediction"`
	Correct    *bool              `json:"correct,omitempty"`
}

// Summary aggregates a pass
type Summary struct {
	TotalGames  int     `json:"total_games"`
	Predictions int     `json:"predictions"`
	YieldRate   float64 `json:"yield_rate"`
}

// Report is the result of one fetch-and-score pass
type Report struct {
	ID          uuid.UUID  `json:"id"`
	Date        time.Time  `json:"-"`
	DateString  string     `json:"date"`
	GeneratedAt time.Time  `json:"generated_at"`
	Games       []GameView `json:"games"`
	Notices     []string   `json:"notices"`
	Summary     Summary    `json:"summary"`
}

// AddNotice appends a user-visible notice to the report
func (r *Report) AddNotice(format string, args ...interface{}) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}

// Builder runs fetch-and-score passes
type Builder struct {
	fetcher ScheduleFetcher
	scorer  MatchupScorer
	logger  *logger.PredictionLogger
	now     func() time.Time
}

// NewBuilder creates a report builder
func NewBuilder(fetcher ScheduleFetcher, scorer MatchupScorer, log *logger.PredictionLogger) *Builder {
	return &Builder{
		fetcher: fetcher,
		scorer:  scorer,
		logger:  log,
		now:     time.Now,
	}
}

// Build fetches the schedule for date and scores each game in order
func (b *Builder) Build(ctx context.Context, date time.Time) *Report {
	start := time.Now()
	passID := uuid.New()
	dateStr := date.Format(dateLayout)

	report := &Report{
		ID:          passID,
		Date:        date,
		DateString:  dateStr,
		GeneratedAt: b.now(),
		Games:       []GameView{},
		Notices:     []string{},
	}

	fetchStart := time.Now()
	games, err := b.fetcher.FetchGames(ctx, date)
	fetchDuration := time.Since(fetchStart)
	metrics.RecordScheduleFetch(err == nil, fetchDuration.Seconds())
	b.logger.LogScheduleFetch(passID.String(), dateStr, len(games), float64(fetchDuration.Milliseconds()), err)

	if err != nil {
		report.AddNotice("Error fetching games: %v", err)
	}
	if len(games) == 0 {
		report.AddNotice(NoGamesNotice)
	}

	for i := range games {
		game := games[i]
		view := GameView{Game: game}

		if pred := b.scorer.Score(ctx, &game); pred != nil {
			view.Prediction = pred
			report.Summary.Predictions++
			if correct, final := pred.IsCorrect(&game); final {
				view.Correct = &correct
			}
		}

		report.Games = append(report.Games, view)
	}

	report.Summary.TotalGames = len(report.Games)
	if report.Summary.TotalGames > 0 {
		report.Summary.YieldRate = float64(report.Summary.Predictions) / float64(report.Summary.TotalGames) * 100
	}

	duration := time.Since(start)
	metrics.RecordPass(report.Summary.TotalGames, report.Summary.YieldRate, duration.Seconds())
	b.logger.LogPassSummary(passID.String(), dateStr, report.Summary.TotalGames, report.Summary.Predictions,
		report.Summary.YieldRate, float64(duration.Milliseconds()))

	return report
}
