// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/lumora/skillsense/internal/adapters/repository"
	"github.com/lumora/skillsense/internal/domain/model"
)

// UserDependencies defines the interface for per-user read operations.
type UserDependencies interface {
	SessionHistory(ctx context.Context, userID string, days int) ([]model.SessionTelemetry, error)
	LatestInsight(ctx context.Context, userID string) (model.InsightBundle, error)
	ProgressTrend(ctx context.Context, userID string) (model.TrendSummary, error)
}

// UsersHandler handles per-user read requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleGetUser handles GET /v1/users/{user_id}/{resource} requests, where
// resource is one of insight, trend or sessions.
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_user"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameters after /v1/users/
	path := strings.TrimPrefix(r.URL.Path, "/v1/users/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	userID, resource := parts[0], parts[1]

	switch resource {
	case "insight":
		h.serveInsight(w, r, userID)
	case "trend":
		h.serveTrend(w, r, userID)
	case "sessions":
		h.serveSessions(w, r, userID)
	default:
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
	}
}

func (h *UsersHandler) serveInsight(w http.ResponseWriter, r *http.Request, userID string) {
	bundle, err := h.deps.LatestInsight(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrInsightNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *UsersHandler) serveTrend(w http.ResponseWriter, r *http.Request, userID string) {
	summary, err := h.deps.ProgressTrend(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *UsersHandler) serveSessions(w http.ResponseWriter, r *http.Request, userID string) {
	const op = "api.get_sessions"
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		days = parsed
	}

	sessions, err := h.deps.SessionHistory(r.Context(), userID, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if sessions == nil {
		sessions = []model.SessionTelemetry{}
	}
	// History reads newest first; the store keeps play order.
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	writeJSON(w, http.StatusOK, sessionsResponse{
		UserID:   userID,
		Count:    len(sessions),
		Sessions: sessions,
	})
}

type sessionsResponse struct {
	UserID   string                   `json:"user_id"`
	Count    int                      `json:"count"`
	Sessions []model.SessionTelemetry `json:"sessions"`
}
