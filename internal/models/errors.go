package models

import "errors"

// Custom errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientData   = errors.New("insufficient historical data")
	ErrZeroRuns           = errors.New("runs scored and allowed are both zero")
	ErrInvalidProbability = errors.New("probability is not a finite number")
)
