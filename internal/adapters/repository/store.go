// Package repository defines the persistence contracts for telemetry
// sessions, insight bundles and trend summaries.
//
// Implementations may use channels, embedded databases or external stores.
// The reference implementation is an in-memory store.
package repository

import (
	"context"
	"time"

	"github.com/lumora/skillsense/internal/domain/model"
)

// SessionStore persists raw telemetry sessions.
type SessionStore interface {
	// AppendSession stores one session, minting an ID when the session
	// carries none, and returns the stored record.
	AppendSession(ctx context.Context, s model.SessionTelemetry) (model.SessionTelemetry, error)

	// GetSession returns one session by ID.
	GetSession(ctx context.Context, sessionID string) (model.SessionTelemetry, error)

	// ListSessions returns a user's sessions played at or after since,
	// ordered oldest first.
	ListSessions(ctx context.Context, userID string, since time.Time) ([]model.SessionTelemetry, error)

	// CountSessions returns the total number of stored sessions.
	CountSessions(ctx context.Context) int
}

// InsightStore persists analysis output.
type InsightStore interface {
	// AppendInsight stores an insight bundle together with its progress
	// snapshot as one unit. Neither is visible unless both are stored.
	AppendInsight(ctx context.Context, b model.InsightBundle, p model.ProgressSnapshot) error

	// AppendTrend stores a trend summary, replacing the user's latest.
	AppendTrend(ctx context.Context, t model.TrendSummary) error

	// LatestInsight returns the most recent insight bundle for a user.
	LatestInsight(ctx context.Context, userID string) (model.InsightBundle, error)

	// LatestTrend returns the most recent trend summary for a user.
	LatestTrend(ctx context.Context, userID string) (model.TrendSummary, error)

	// CountInsights returns the total number of stored insight bundles.
	CountInsights(ctx context.Context) int

	// CountTrends returns the total number of stored trend summaries.
	CountTrends(ctx context.Context) int
}

// Store combines both persistence contracts.
type Store interface {
	SessionStore
	InsightStore
}
