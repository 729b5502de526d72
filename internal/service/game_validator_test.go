package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/mlb-dashboard/internal/models"
)

func TestGameValidator_ValidateGame(t *testing.T) {
	v := NewGameValidator()

	tests := []struct {
		name       string
		mutate     func(g *models.Game)
		shouldHave string
	}{
		{name: "valid final game", mutate: func(g *models.Game) {}},
		{name: "missing game pk", mutate: func(g *models.Game) { g.GamePK = 0 }, shouldHave: "GamePK"},
		{name: "missing home team", mutate: func(g *models.Game) { g.HomeTeam = "" }, shouldHave: "HomeTeam is required"},
		{name: "team plays itself", mutate: func(g *models.Game) { g.AwayID = g.HomeID }, shouldHave: "AwayID must differ from HomeID"},
		{name: "bad official date", mutate: func(g *models.Game) { g.OfficialDate = "15/06/2025" }, shouldHave: "OfficialDate must be a date"},
		{name: "negative score", mutate: func(g *models.Game) { g.HomeScore = intPtr(-1) }, shouldHave: "HomeScore"},
		{name: "final without score", mutate: func(g *models.Game) { g.AwayScore = nil }, shouldHave: "missing a score"},
		{
			name: "start time far from official date",
			mutate: func(g *models.Game) {
				later := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
				g.StartTime = &later
			},
			shouldHave: "far from official date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := finalGame(1, 111, 147)
			tt.mutate(&game)

			problems := v.ValidateGame(&game)
			if tt.shouldHave == "" {
				assert.Empty(t, problems)
				assert.NoError(t, v.Validate(&game))
				return
			}

			assert.NotEmpty(t, problems)
			assert.True(t, strings.Contains(strings.Join(problems, "; "), tt.shouldHave),
				"expected problem containing %q, got %v", tt.shouldHave, problems)
			assert.Error(t, v.Validate(&game))
		})
	}
}
