// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/telemetry"
)

// SessionDependencies defines the interface for session recording.
type SessionDependencies interface {
	RecordSession(ctx context.Context, s model.SessionTelemetry) (model.SessionTelemetry, error)
}

// SessionsHandler handles session recording requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandlePostSession handles POST /v1/sessions requests. Recording is
// acknowledged before analysis completes; the insight becomes readable once
// a worker has processed the session.
func (h *SessionsHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	stored, err := h.deps.RecordSession(r.Context(), req.toModel())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:    "accepted",
		SessionID: stored.SessionID,
		UserID:    stored.UserID,
		Summary: sessionSummary{
			GameName:        stored.GameName,
			Score:           stored.Score,
			LevelReached:    stored.LevelReached,
			DurationSeconds: stored.DurationSeconds,
			Accuracy:        telemetry.BaseAccuracy(stored),
		},
	})
}
