// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lumora/skillsense/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// RecordSession persists a session and schedules its analysis.
	RecordSession(ctx context.Context, s model.SessionTelemetry) (model.SessionTelemetry, error)

	// Read operations expose analysis output.
	SessionHistory(ctx context.Context, userID string, days int) ([]model.SessionTelemetry, error)
	LatestInsight(ctx context.Context, userID string) (model.InsightBundle, error)
	ProgressTrend(ctx context.Context, userID string) (model.TrendSummary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	sessionsHandler *SessionsHandler
	usersHandler    *UsersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		sessionsHandler: NewSessionsHandler(deps),
		usersHandler:    NewUsersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/sessions", MetricsMiddleware(s.sessionsHandler.HandlePostSession, "sessions"))
	mux.HandleFunc("/v1/users/", MetricsMiddleware(s.usersHandler.HandleGetUser, "users"))
}

// sessionRequest mirrors the wire schema for POST /v1/sessions.
type sessionRequest struct {
	SessionID          string          `json:"session_id"`
	UserID             string          `json:"user_id"`
	GameName           string          `json:"game_name"`
	GameMode           string          `json:"game_mode"`
	LevelReached       int             `json:"level_reached"`
	Score              int             `json:"score"`
	TotalAttempts      int             `json:"total_attempts"`
	SuccessfulAttempts int             `json:"successful_attempts"`
	LeftHandUsage      int             `json:"left_hand_usage"`
	RightHandUsage     int             `json:"right_hand_usage"`
	DurationSeconds    float64         `json:"duration_seconds"`
	PlayedAt           string          `json:"played_at"`
	RawData            json.RawMessage `json:"raw_data"`
}

func (s sessionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.UserID) == "":
		return errors.New("missing user_id")
	case strings.TrimSpace(s.GameName) == "":
		return errors.New("missing game_name")
	case s.LevelReached < 0:
		return errors.New("level_reached must not be negative")
	case s.TotalAttempts < 0 || s.SuccessfulAttempts < 0:
		return errors.New("attempt counts must not be negative")
	case s.DurationSeconds < 0:
		return errors.New("duration_seconds must not be negative")
	}
	if s.PlayedAt != "" {
		if _, err := time.Parse(time.RFC3339, s.PlayedAt); err != nil {
			return errors.New("invalid played_at; must be RFC3339")
		}
	}
	return nil
}

// toModel converts the wire request into the domain session.
func (s sessionRequest) toModel() model.SessionTelemetry {
	out := model.SessionTelemetry{
		SessionID:          s.SessionID,
		UserID:             s.UserID,
		GameName:           s.GameName,
		GameMode:           s.GameMode,
		LevelReached:       s.LevelReached,
		Score:              s.Score,
		TotalAttempts:      s.TotalAttempts,
		SuccessfulAttempts: s.SuccessfulAttempts,
		LeftHandUsage:      s.LeftHandUsage,
		RightHandUsage:     s.RightHandUsage,
		DurationSeconds:    s.DurationSeconds,
		RawData:            string(s.RawData),
	}
	if s.PlayedAt != "" {
		if ts, err := time.Parse(time.RFC3339, s.PlayedAt); err == nil {
			out.PlayedAt = ts
		}
	}
	return out
}

type ackResponse struct {
	Status    string         `json:"status"`
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Summary   sessionSummary `json:"summary"`
}

// sessionSummary echoes the headline numbers of an accepted session.
type sessionSummary struct {
	GameName        string  `json:"game_name"`
	Score           int     `json:"score"`
	LevelReached    int     `json:"level_reached"`
	DurationSeconds float64 `json:"duration_seconds"`
	Accuracy        float64 `json:"accuracy"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
