package repository

import (
	"errors"
)

// Sentinel kinds for repository errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInsightNotFound = errors.New("insight not found")
	ErrTrendNotFound   = errors.New("trend not found")
)
