// Package model contains domain models passed between layers.
package model

import "time"

// SessionTelemetry represents one completed (or aborted) play session as
// submitted by a game client. It is read-only input to the analysis engine.
type SessionTelemetry struct {
	SessionID          string    `json:"session_id"`          // unique id assigned by the session store
	UserID             string    `json:"user_id"`             // subject identifier
	GameName           string    `json:"game_name"`           // free-form game identifier, e.g. "Follow the Dot"
	GameMode           string    `json:"game_mode"`           // e.g. "timed", "free", "easy"
	LevelReached       int       `json:"level_reached"`       // highest level reached, >= 1
	Score              int       `json:"score"`               // final score, >= 0
	TotalAttempts      int       `json:"total_attempts"`      // total attempt count, 0 when unknown
	SuccessfulAttempts int       `json:"successful_attempts"` // successful attempt count, 0 when unknown
	LeftHandUsage      int       `json:"left_hand_usage"`     // left-hand interaction count
	RightHandUsage     int       `json:"right_hand_usage"`    // right-hand interaction count
	DurationSeconds    float64   `json:"duration_seconds"`    // session length in seconds, 0 when unknown
	PlayedAt           time.Time `json:"played_at"`           // session timestamp
	RawData            string    `json:"raw_data,omitempty"`  // JSON payload of per-game detail, may be empty
}

// FailedAttempts derives the failure count from the attempt counters. It is
// computed rather than stored so the two counters can never disagree.
func (s SessionTelemetry) FailedAttempts() int {
	failed := s.TotalAttempts - s.SuccessfulAttempts
	if failed < 0 {
		return 0
	}
	return failed
}

// HandUsageTotal returns the combined left/right interaction count.
func (s SessionTelemetry) HandUsageTotal() int {
	return s.LeftHandUsage + s.RightHandUsage
}
