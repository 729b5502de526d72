package repository

import (
	"fmt"

	"github.com/yourusername/mlb-dashboard/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	GameLog GameLogRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		GameLog: NewPostgresGameLogRepository(db),
	}, nil
}
