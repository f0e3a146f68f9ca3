package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/pkg/metrics"
)

// MemoryStore implements Store with per-user, time-ordered slices guarded
// by one RWMutex. It is safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	sessionsByID   map[string]model.SessionTelemetry
	sessionsByUser map[string][]model.SessionTelemetry

	insightsByUser  map[string][]model.InsightBundle
	snapshotsByUser map[string][]model.ProgressSnapshot
	trendsByUser    map[string][]model.TrendSummary

	newID func() string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	m := &MemoryStore{
		sessionsByID:    make(map[string]model.SessionTelemetry),
		sessionsByUser:  make(map[string][]model.SessionTelemetry),
		insightsByUser:  make(map[string][]model.InsightBundle),
		snapshotsByUser: make(map[string][]model.ProgressSnapshot),
		trendsByUser:    make(map[string][]model.TrendSummary),
		newID:           uuid.NewString,
	}

	for _, opt := range opts {
		opt(m)
	}

	metrics.UpdateStoredSessions(0)
	metrics.UpdateStoredInsights(0)
	metrics.UpdateStoredTrends(0)

	return m
}

// AppendSession stores one session, keeping the user's slice ordered by
// play time.
func (m *MemoryStore) AppendSession(_ context.Context, s model.SessionTelemetry) (model.SessionTelemetry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.SessionID == "" {
		s.SessionID = m.newID()
	}
	if s.PlayedAt.IsZero() {
		s.PlayedAt = time.Now()
	}

	m.sessionsByID[s.SessionID] = s

	list := append(m.sessionsByUser[s.UserID], s)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].PlayedAt.Before(list[j].PlayedAt)
	})
	m.sessionsByUser[s.UserID] = list

	metrics.UpdateStoredSessions(len(m.sessionsByID))

	return s, nil
}

// GetSession returns one session by ID.
func (m *MemoryStore) GetSession(_ context.Context, sessionID string) (model.SessionTelemetry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessionsByID[sessionID]
	if !ok {
		return model.SessionTelemetry{}, ErrSessionNotFound
	}
	return s, nil
}

// ListSessions returns a user's sessions played at or after since, oldest
// first. The result is a copy; callers may mutate it freely.
func (m *MemoryStore) ListSessions(_ context.Context, userID string, since time.Time) ([]model.SessionTelemetry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.SessionTelemetry
	for _, s := range m.sessionsByUser[userID] {
		if s.PlayedAt.Before(since) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// CountSessions returns the total number of stored sessions.
func (m *MemoryStore) CountSessions(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessionsByID)
}

// AppendInsight stores an insight bundle with its progress snapshot as one
// unit under the lock, so readers never observe one without the other.
func (m *MemoryStore) AppendInsight(_ context.Context, b model.InsightBundle, p model.ProgressSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insightsByUser[b.UserID] = append(m.insightsByUser[b.UserID], b)
	m.snapshotsByUser[p.UserID] = append(m.snapshotsByUser[p.UserID], p)

	metrics.RecordInsightStored()
	metrics.UpdateStoredInsights(m.insightCountLocked())

	return nil
}

// AppendTrend stores a trend summary as the user's latest.
func (m *MemoryStore) AppendTrend(_ context.Context, t model.TrendSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trendsByUser[t.UserID] = append(m.trendsByUser[t.UserID], t)

	metrics.UpdateStoredTrends(m.trendCountLocked())

	return nil
}

// LatestInsight returns the most recent insight bundle for a user.
func (m *MemoryStore) LatestInsight(_ context.Context, userID string) (model.InsightBundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.insightsByUser[userID]
	if len(list) == 0 {
		return model.InsightBundle{}, ErrInsightNotFound
	}
	return list[len(list)-1], nil
}

// LatestTrend returns the most recent trend summary for a user.
func (m *MemoryStore) LatestTrend(_ context.Context, userID string) (model.TrendSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.trendsByUser[userID]
	if len(list) == 0 {
		return model.TrendSummary{}, ErrTrendNotFound
	}
	return list[len(list)-1], nil
}

// CountInsights returns the total number of stored insight bundles.
func (m *MemoryStore) CountInsights(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.insightCountLocked()
}

// CountTrends returns the total number of stored trend summaries.
func (m *MemoryStore) CountTrends(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trendCountLocked()
}

func (m *MemoryStore) insightCountLocked() int {
	var n int
	for _, list := range m.insightsByUser {
		n += len(list)
	}
	return n
}

func (m *MemoryStore) trendCountLocked() int {
	var n int
	for _, list := range m.trendsByUser {
		n += len(list)
	}
	return n
}
