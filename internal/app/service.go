// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	analysisqueue "github.com/lumora/skillsense/internal/adapters/mq/queue"
	workerpool "github.com/lumora/skillsense/internal/adapters/mq/worker"
	"github.com/lumora/skillsense/internal/adapters/repository"
	"github.com/lumora/skillsense/internal/domain/insight"
	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/scoring"
	"github.com/lumora/skillsense/internal/domain/trend"
	"github.com/lumora/skillsense/pkg/logger"
	"github.com/lumora/skillsense/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize      = 10_000
	defaultLookbackDays   = 30
	defaultTrendFreshness = 24 * time.Hour
	defaultHistoryDays    = 30
)

// Service implements the API dependencies for the skill analytics system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	queue      analysisqueue.Queue
	generator  *insight.Generator
	trender    *trend.Analyzer
	workerPool *workerpool.Pool

	// Configuration
	workerCount             int
	queueSize               int
	lookbackDays            int
	trendFreshness          time.Duration
	historyDaysDefault      int
	motorWeights            map[string]float64
	cognitiveWeights        map[string]float64
	motorThresholds         *insight.Thresholds
	cognitiveThresholds     *insight.Thresholds
	maxRecommendations      int
	maxTrendRecommendations int

	// State
	started bool
	now     func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the analysis queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLookbackDays bounds how far back session history feeds trend
// summaries.
func WithLookbackDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

// WithTrendFreshness sets how long a stored trend summary is served before
// being recomputed. Zero forces recomputation on every request.
func WithTrendFreshness(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.trendFreshness = d
		}
	}
}

// WithHistoryDaysDefault sets the default window for history queries.
func WithHistoryDaysDefault(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.historyDaysDefault = days
		}
	}
}

// WithMotorWeights overrides the motor composite weight table.
func WithMotorWeights(w map[string]float64) Option {
	return func(s *Service) {
		s.motorWeights = w
	}
}

// WithCognitiveWeights overrides the cognitive composite weight table.
func WithCognitiveWeights(w map[string]float64) Option {
	return func(s *Service) {
		s.cognitiveWeights = w
	}
}

// WithMotorThresholds overrides the motor classification cut points.
func WithMotorThresholds(t insight.Thresholds) Option {
	return func(s *Service) {
		s.motorThresholds = &t
	}
}

// WithCognitiveThresholds overrides the cognitive classification cut points.
func WithCognitiveThresholds(t insight.Thresholds) Option {
	return func(s *Service) {
		s.cognitiveThresholds = &t
	}
}

// WithMaxRecommendations caps per-session recommendation lists.
func WithMaxRecommendations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRecommendations = n
		}
	}
}

// WithMaxTrendRecommendations caps long-term recommendation lists.
func WithMaxTrendRecommendations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTrendRecommendations = n
		}
	}
}

// WithStore sets a custom store, mainly for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:             runtime.NumCPU() * 4,
		queueSize:               defaultQueueSize,
		lookbackDays:            defaultLookbackDays,
		trendFreshness:          defaultTrendFreshness,
		historyDaysDefault:      defaultHistoryDays,
		maxRecommendations:      0, // generator default applies
		maxTrendRecommendations: 0, // trend analyzer default applies
		now:                     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting analytics service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.queue = analysisqueue.NewInMemoryQueue(
		analysisqueue.WithCapacity(s.queueSize),
		analysisqueue.WithBufferSize(s.queueSize),
	)

	generatorOpts := []insight.Option{
		insight.WithLogger(s.logger.Named("insight")),
		insight.WithScorer(scoring.NewComposite(
			scoring.WithMotorWeights(s.motorWeights),
			scoring.WithCognitiveWeights(s.cognitiveWeights),
		)),
	}
	if s.motorThresholds != nil {
		generatorOpts = append(generatorOpts, insight.WithMotorThresholds(*s.motorThresholds))
	}
	if s.cognitiveThresholds != nil {
		generatorOpts = append(generatorOpts, insight.WithCognitiveThresholds(*s.cognitiveThresholds))
	}
	if s.maxRecommendations > 0 {
		generatorOpts = append(generatorOpts, insight.WithMaxRecommendations(s.maxRecommendations))
	}
	s.generator = insight.NewGenerator(generatorOpts...)

	trenderOpts := []trend.Option{
		trend.WithLogger(s.logger.Named("trend")),
	}
	if s.maxTrendRecommendations > 0 {
		trenderOpts = append(trenderOpts, trend.WithMaxRecommendations(s.maxTrendRecommendations))
	}
	s.trender = trend.NewAnalyzer(trenderOpts...)

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.generator, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("lookbackDays", s.lookbackDays),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping analytics service...")

	if q, ok := s.queue.(*analysisqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// RecordSession persists one telemetry session and schedules its analysis.
// Analysis is best effort: a full queue drops the job without failing the
// recording.
func (s *Service) RecordSession(ctx context.Context, in model.SessionTelemetry) (model.SessionTelemetry, error) {
	stored, err := s.store.AppendSession(ctx, in)
	if err != nil {
		metrics.RecordErrorByComponent("service", "store_error")
		return model.SessionTelemetry{}, err
	}

	metrics.RecordSessionRecorded()

	if !s.queue.Enqueue(ctx, stored) {
		s.logger.Warn(ctx, "analysis queue full, dropping job",
			logger.String("sessionID", stored.SessionID),
			logger.String("userID", stored.UserID),
		)
	}

	return stored, nil
}

// AnalyzeSession runs the analysis pipeline synchronously and persists the
// output. The queue path uses the same generator; this entry point serves
// callers that need the bundle immediately.
func (s *Service) AnalyzeSession(ctx context.Context, in model.SessionTelemetry) (model.InsightBundle, error) {
	bundle, snapshot := s.generator.Analyze(ctx, in)
	if err := s.store.AppendInsight(ctx, bundle, snapshot); err != nil {
		metrics.RecordAnalysisFailed()
		return model.InsightBundle{}, err
	}
	metrics.RecordAnalysisCompleted()
	return bundle, nil
}

// SessionHistory returns a user's sessions from the last given days,
// oldest first. Non-positive days fall back to the configured default.
func (s *Service) SessionHistory(ctx context.Context, userID string, days int) ([]model.SessionTelemetry, error) {
	if days <= 0 {
		days = s.historyDaysDefault
	}
	since := s.now().AddDate(0, 0, -days)
	return s.store.ListSessions(ctx, userID, since)
}

// LatestInsight returns the most recent insight bundle for a user.
func (s *Service) LatestInsight(ctx context.Context, userID string) (model.InsightBundle, error) {
	return s.store.LatestInsight(ctx, userID)
}

// ProgressTrend returns the user's trend summary, recomputing it from the
// lookback window when the stored one is stale or missing.
func (s *Service) ProgressTrend(ctx context.Context, userID string) (model.TrendSummary, error) {
	if stored, err := s.store.LatestTrend(ctx, userID); err == nil {
		if s.trendFreshness > 0 && s.now().Sub(stored.GeneratedAt) < s.trendFreshness {
			return stored, nil
		}
	}

	since := s.now().AddDate(0, 0, -s.lookbackDays)
	sessions, err := s.store.ListSessions(ctx, userID, since)
	if err != nil {
		return model.TrendSummary{}, err
	}

	start := time.Now()
	summary := s.trender.Summarize(ctx, userID, sessions)
	metrics.RecordTrendLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordTrendRegeneration()

	if err := s.store.AppendTrend(ctx, summary); err != nil {
		return model.TrendSummary{}, err
	}
	return summary, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"lookbackDays": s.lookbackDays,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		sessionCount := s.store.CountSessions(ctx)
		insightCount := s.store.CountInsights(ctx)
		trendCount := s.store.CountTrends(ctx)

		stats["queueLength"] = queueLen
		stats["totalSessions"] = sessionCount
		stats["totalInsights"] = insightCount
		stats["totalTrends"] = trendCount

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoredSessions(sessionCount)
		metrics.UpdateStoredInsights(insightCount)
		metrics.UpdateStoredTrends(trendCount)
		metrics.UpdateWorkerCount(s.workerPool.Size())
	}

	return stats
}
