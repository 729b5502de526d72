package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/mlb-dashboard/internal/models"
)

// GameValidator checks schedule records before they are written to the game log
type GameValidator struct {
	validate *validator.Validate
}

// NewGameValidator creates a new game validator
func NewGameValidator() *GameValidator {
	return &GameValidator{validate: validator.New()}
}

// ValidateGame returns a list of problems with game; empty means valid
func (v *GameValidator) ValidateGame(game *models.Game) []string {
	var problems []string

	if err := v.validate.Struct(game); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				problems = append(problems, fieldProblem(fe))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	if game.Status == models.StatusFinal && (game.HomeScore == nil || game.AwayScore == nil) {
		problems = append(problems, "final game is missing a score")
	}

	if game.StartTime != nil && game.OfficialDate != "" {
		official, err := time.Parse("2006-01-02", game.OfficialDate)
		if err == nil && game.StartTime.Sub(official) > 48*time.Hour {
			problems = append(problems, fmt.Sprintf("start time %s is far from official date %s",
				game.StartTime.Format(time.RFC3339), game.OfficialDate))
		}
	}

	return problems
}

// Validate wraps ValidateGame into a single error
func (v *GameValidator) Validate(game *models.Game) error {
	problems := v.ValidateGame(game)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid game %d: %v", game.GamePK, problems)
}

func fieldProblem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation (value: %v)", fe.Field(), fe.Tag(), fe.Value())
	}
}
