// Package trend summarizes a user's session history into longitudinal
// progress: score and accuracy slopes, a trajectory label, recent-window
// risk indicators and per-skill trend descriptors.
package trend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/pkg/logger"
)

// Trend-scope constants.
const (
	defaultMaxRecommendations = 6
	trendConfidence           = 0.9 // fixed confidence for history summaries
	minSessionsForSlopes      = 3   // below this, slopes stay at zero
	recentWindow              = 5   // sessions feeding the risk indicators

	accuracyRiskPivot = 70.0  // recent mean accuracy at which motor risk is zero
	durationRiskPivot = 120.0 // recent mean duration (seconds) at which attention risk is zero

	scoreSlopeExcellentFloor    = 5.0
	accuracySlopeExcellentFloor = 2.0
	scoreSlopeSteadyFloor       = 2.0
	accuracySlopeSteadyFloor    = 1.0
	scoreSlopeAttentionCeil     = -5.0
	accuracySlopeAttentionCeil  = -2.0

	directionImprovingFloor = 1.0
	directionDecliningCeil  = -1.0

	lowAccuracyCeil    = 60.0
	shortDurationCeil  = 120.0
	varietyGameFloor   = 2
	frequencyDaysFloor = 10
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithMaxRecommendations caps the long-term recommendation list length.
func WithMaxRecommendations(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxRecommendations = n
		}
	}
}

// WithLogger sets a custom logger for the analyzer.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithIDGenerator overrides summary ID minting, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(a *Analyzer) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(fn func() time.Time) Option {
	return func(a *Analyzer) {
		if fn != nil {
			a.now = fn
		}
	}
}

// Analyzer computes trend summaries over chronologically ordered session
// histories. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	maxRecommendations int
	newID              func() string
	now                func() time.Time
	logger             logger.Logger
}

// NewAnalyzer creates a trend Analyzer with configuration options.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		maxRecommendations: defaultMaxRecommendations,
		newID:              uuid.NewString,
		now:                time.Now,
		logger:             logger.Get().Named("trend"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize reduces the session history, oldest first, into one trend
// summary. Fewer than two sessions yield the neutral default: zero slopes,
// zero risks and a stable trajectory, with the long-term recommendation
// rules still applied so the list is never empty.
func (a *Analyzer) Summarize(ctx context.Context, userID string, sessions []model.SessionTelemetry) model.TrendSummary {
	summary := model.TrendSummary{
		ID:           a.newID(),
		UserID:       userID,
		SessionCount: len(sessions),
		Trajectory:   model.TrajectoryStable,
		Confidence:   trendConfidence,
		GeneratedAt:  a.now(),
	}

	if len(sessions) >= 2 {
		scores := make([]float64, len(sessions))
		accuracies := make([]float64, len(sessions))
		durations := make([]float64, len(sessions))
		for i, s := range sessions {
			scores[i] = float64(s.Score)
			accuracies[i] = sessionAccuracy(s)
			durations[i] = sessionDuration(s)
		}

		if len(sessions) >= minSessionsForSlopes {
			summary.ScoreSlope = regressionSlope(scores)
			summary.AccuracySlope = regressionSlope(accuracies)
		}
		summary.Trajectory = classifyTrajectory(summary.ScoreSlope, summary.AccuracySlope)

		recentAcc := mean(tail(accuracies, recentWindow))
		recentDur := mean(tail(durations, recentWindow))
		summary.MotorRisk = pivotRisk(recentAcc, accuracyRiskPivot)
		summary.AttentionRisk = pivotRisk(recentDur, durationRiskPivot)
		summary.OverallRisk = (summary.MotorRisk + summary.AttentionRisk) / 2

		summary.Strengths, summary.ImprovementAreas = trendHighlights(summary, accuracies, durations)
		summary.Motor = motorTrend(summary, accuracies, recentAcc)
		summary.Cognitive = cognitiveTrend(sessions, durations, recentDur)
	}

	summary.Recommendations = a.recommendLongTerm(summary, sessions)

	a.logger.Info(ctx, "trend summarized",
		logger.String("userID", userID),
		logger.Int("sessions", len(sessions)),
		logger.Float64("scoreSlope", summary.ScoreSlope),
		logger.String("trajectory", string(summary.Trajectory)),
	)

	return summary
}

// sessionAccuracy is the strict percentage for trend purposes: sessions
// without attempt counts contribute zero rather than an estimate.
func sessionAccuracy(s model.SessionTelemetry) float64 {
	if s.TotalAttempts > 0 {
		return float64(s.SuccessfulAttempts) / float64(s.TotalAttempts) * 100
	}
	return 0
}

// sessionDuration is the recorded duration in seconds, or the standard
// 60-second fallback for unrecorded sessions.
func sessionDuration(s model.SessionTelemetry) float64 {
	if s.DurationSeconds > 0 {
		return s.DurationSeconds
	}
	return 60
}

// classifyTrajectory labels the longitudinal direction from both slopes.
func classifyTrajectory(scoreSlope, accuracySlope float64) model.Trajectory {
	switch {
	case scoreSlope > scoreSlopeExcellentFloor && accuracySlope > accuracySlopeExcellentFloor:
		return model.TrajectoryExcellentImprovement
	case scoreSlope > scoreSlopeSteadyFloor && accuracySlope > accuracySlopeSteadyFloor:
		return model.TrajectorySteadyImprovement
	case scoreSlope < scoreSlopeAttentionCeil || accuracySlope < accuracySlopeAttentionCeil:
		return model.TrajectoryNeedsAttention
	default:
		return model.TrajectoryStable
	}
}

// trendHighlights thresholds the longitudinal signals into strengths and
// improvement areas.
func trendHighlights(summary model.TrendSummary, accuracies, durations []float64) (strengths, improvements []string) {
	recentAcc := mean(tail(accuracies, recentWindow))
	recentDur := mean(tail(durations, recentWindow))

	if summary.ScoreSlope > 0 {
		strengths = append(strengths, "Showing consistent score improvement")
	}
	if summary.AccuracySlope > 0 {
		strengths = append(strengths, "Accuracy is improving over time")
	}
	if len(durations) > recentWindow && recentDur > mean(durations[:recentWindow]) {
		strengths = append(strengths, "Session engagement is increasing")
	}

	if summary.ScoreSlope < 0 {
		improvements = append(improvements, "Focus on maintaining performance consistency")
	}
	if recentAcc < lowAccuracyCeil {
		improvements = append(improvements, "Work on improving overall accuracy")
	}
	if recentDur < shortDurationCeil {
		improvements = append(improvements, "Consider longer practice sessions")
	}

	return strengths, improvements
}

// motorTrend builds the per-skill motor descriptor from the accuracy series.
func motorTrend(summary model.TrendSummary, accuracies []float64, recentAcc float64) model.MotorTrend {
	direction := model.DirectionStable
	if summary.AccuracySlope > directionImprovingFloor {
		direction = model.DirectionImproving
	} else if summary.AccuracySlope < directionDecliningCeil {
		direction = model.DirectionDeclining
	}

	consistency := 100.0
	if sd, err := stats.StandardDeviation(stats.Float64Data(accuracies)); err == nil {
		consistency = 100 - capAt(sd, 100)
	}

	return model.MotorTrend{
		AverageAccuracy: recentAcc,
		Direction:       direction,
		ScoreSlope:      summary.ScoreSlope,
		Consistency:     consistency,
	}
}

// cognitiveTrend builds the per-skill cognitive descriptor from the recent
// window. Engagement compares recent session length against the earliest
// sessions, not scores.
func cognitiveTrend(sessions []model.SessionTelemetry, durations []float64, recentDur float64) model.CognitiveTrend {
	engagement := model.DirectionStable
	earlier := durations
	if len(durations) > recentWindow {
		earlier = durations[:recentWindow]
	}
	if recentDur > mean(earlier) {
		engagement = model.DirectionImproving
	}

	recent := sessions
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	var maxLevel, levelSum int
	for _, s := range recent {
		if s.LevelReached > maxLevel {
			maxLevel = s.LevelReached
		}
		levelSum += s.LevelReached
	}
	meanLevel := 0.0
	if len(recent) > 0 {
		meanLevel = float64(levelSum) / float64(len(recent))
	}

	return model.CognitiveTrend{
		AttentionMinutes: recentDur / 60,
		Engagement:       engagement,
		MaxLevel:         maxLevel,
		MeanLevel:        meanLevel,
	}
}

// pivotRisk maps a recent mean toward a 0-100 risk value; values at or
// above the pivot carry no risk.
func pivotRisk(recent, pivot float64) float64 {
	risk := (pivot - recent) / pivot * 100
	if risk < 0 {
		return 0
	}
	if risk > 100 {
		return 100
	}
	return risk
}

// tail returns the last n elements, or the whole slice when shorter.
func tail(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func mean(values []float64) float64 {
	m, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return m
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
