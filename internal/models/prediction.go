package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConfidenceTier buckets a prediction's confidence for display
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "HIGH"
	ConfidenceMedium ConfidenceTier = "MEDIUM"
	ConfidenceLow    ConfidenceTier = "LOW"
)

// Prediction represents the win-probability estimate for one matchup.
// Probabilities and confidence are percentages.
type Prediction struct {
	PredictedWinner string  `json:"predicted_winner"`
	Confidence      float64 `json:"confidence"`
	HomeWinProb     float64 `json:"home_win_prob"`
	AwayWinProb     float64 `json:"away_win_prob"`
	HomeRecord      string  `json:"home_record"`
	AwayRecord      string  `json:"away_record"`
	DataGames       string  `json:"data_games"`
	HomeStrength    float64 `json:"home_strength"`
	AwayStrength    float64 `json:"away_strength"`
}

// Tier returns the confidence tier for the prediction
func (p *Prediction) Tier() ConfidenceTier {
	switch {
	case p.Confidence >= 60:
		return ConfidenceHigh
	case p.Confidence >= 55:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// IsCorrect checks the prediction against a final game's actual winner
func (p *Prediction) IsCorrect(game *Game) (bool, bool) {
	winner, ok := game.ActualWinner()
	if !ok {
		return false, false
	}
	return p.PredictedWinner == winner, true
}

// Marker returns the display marker for a confidence tier
func (t ConfidenceTier) Marker() string {
	switch t {
	case ConfidenceHigh:
		return "🟢"
	case ConfidenceMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

// FormatPercent formats a percentage with one decimal place, rounding half away from zero
func FormatPercent(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1) + "%"
}

// FormatRate formats a win rate the way records are shown, e.g. 0.547
func FormatRate(rate float64) string {
	return decimal.NewFromFloat(rate).StringFixed(3)
}

// FormatSampleSize summarises the number of games behind each side of a prediction
func FormatSampleSize(homeGames, awayGames int) string {
	return fmt.Sprintf("%dH, %dA", homeGames, awayGames)
}
