package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yourusername/mlb-dashboard/internal/models"
)

const (
	separator     = "---"
	gameTimeFmt   = "03:04 PM MST"
	headerDateFmt = "Monday, January 02, 2006"
	generatedFmt  = "2006-01-02 15:04:05"
	unknownTime   = "TBD"
	noPrediction  = "❌ PREDICTION: Unable to generate (insufficient data)"
)

// TextRenderer writes a report in the dashboard's plain text layout
type TextRenderer struct {
	Location *time.Location
}

// NewTextRenderer creates a renderer that shows times in loc
func NewTextRenderer(loc *time.Location) *TextRenderer {
	return &TextRenderer{Location: loc}
}

// FormatGameTime returns the local start time of a game or TBD when unknown
func (tr *TextRenderer) FormatGameTime(game *models.Game) string {
	if game.StartTime == nil {
		return unknownTime
	}
	loc := tr.Location
	if loc == nil {
		loc = time.Local
	}
	return game.StartTime.In(loc).Format(gameTimeFmt)
}

// Render writes the full report to w
func (tr *TextRenderer) Render(w io.Writer, report *Report) error {
	_, err := io.WriteString(w, tr.String(report))
	return err
}

// String renders the report into a string
func (tr *TextRenderer) String(report *Report) string {
	var b strings.Builder

	loc := tr.Location
	if loc == nil {
		loc = time.Local
	}

	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "🏟️ MLB DAILY PREDICTIONS - %s\n", report.Date.Format(headerDateFmt))
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.In(loc).Format(generatedFmt))
	fmt.Fprintln(&b, separator)

	for _, notice := range report.Notices {
		fmt.Fprintf(&b, "❌ %s\n", notice)
	}

	if len(report.Games) > 0 {
		fmt.Fprintf(&b, "✅ Found %d games\n", len(report.Games))
		fmt.Fprintf(&b, "🎯 GENERATING PREDICTIONS FOR %d GAMES\n", len(report.Games))
	}

	for i := range report.Games {
		fmt.Fprintln(&b, separator)
		tr.writeGame(&b, i+1, &report.Games[i])
	}

	fmt.Fprintln(&b, separator)
	fmt.Fprintln(&b, "📊 PREDICTION SUMMARY")
	fmt.Fprintf(&b, "🎯 Total Games: %d\n", report.Summary.TotalGames)
	fmt.Fprintf(&b, "✅ Predictions Generated: %d\n", report.Summary.Predictions)
	fmt.Fprintf(&b, "📈 Yield Rate: %s\n", models.FormatPercent(report.Summary.YieldRate))

	return b.String()
}

func (tr *TextRenderer) writeGame(b *strings.Builder, n int, view *GameView) {
	game := &view.Game

	fmt.Fprintf(b, "%d. 🏟️ %s\n", n, game.Matchup())
	fmt.Fprintf(b, "📅 %s | 🏟️ %s\n", tr.FormatGameTime(game), game.Venue)

	if game.IsFinal() {
		winner, _ := game.ActualWinner()
		fmt.Fprintf(b, "📊 FINAL: %s %d - %d %s\n", game.AwayTeam, *game.AwayScore, *game.HomeScore, game.HomeTeam)
		fmt.Fprintf(b, "🏆 WINNER: %s\n", winner)
	} else {
		fmt.Fprintf(b, "📊 STATUS: %s\n", game.Status)
	}

	pred := view.Prediction
	if pred == nil {
		fmt.Fprintln(b, noPrediction)
		return
	}

	fmt.Fprintf(b, "%s PREDICTION: %s (%s)\n", pred.Tier().Marker(), pred.PredictedWinner, models.FormatPercent(pred.Confidence))
	fmt.Fprintf(b, "📈 PROBABILITIES: %s %s | %s %s\n",
		game.HomeTeam, models.FormatPercent(pred.HomeWinProb), game.AwayTeam, models.FormatPercent(pred.AwayWinProb))
	fmt.Fprintf(b, "📊 RECENT RECORDS: %s %s | %s %s\n", game.HomeTeam, pred.HomeRecord, game.AwayTeam, pred.AwayRecord)
	fmt.Fprintf(b, "📋 DATA: %s games\n", pred.DataGames)

	if view.Correct != nil {
		if *view.Correct {
			fmt.Fprintln(b, "✅ RESULT: CORRECT!")
		} else {
			fmt.Fprintln(b, "❌ RESULT: WRONG")
		}
	}
}
