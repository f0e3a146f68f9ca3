// Package skill derives per-session skill dimensions from normalized
// telemetry. Motor derivation is polymorphic over the game family; cognitive,
// engagement and hand-dominance derivation are shared across families.
package skill

import (
	"context"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/telemetry"
	"github.com/lumora/skillsense/pkg/logger"
)

// Shared derivation defaults.
const (
	defaultSmoothness        = 50.0 // neutral fallback when smoothness cannot be computed
	defaultBilateralTracing  = 75.0 // moderate bilateral default for tracing/generic games
	defaultBilateralReaction = 70.0 // bilateral default for reaction games
	maxDimensionScore        = 100.0
)

// MotorStrategy derives motor dimensions for one game family. The second
// return is the mean reaction time in milliseconds when known, else 0.
type MotorStrategy interface {
	DeriveMotor(s model.SessionTelemetry, n telemetry.Normalized) (map[string]float64, float64)
}

// StrategyFor returns the motor strategy for a game family. Unknown families
// fall back to the generic strategy.
func StrategyFor(family telemetry.GameFamily) MotorStrategy {
	switch family {
	case telemetry.FamilyTracing:
		return tracingStrategy{}
	case telemetry.FamilyReaction:
		return reactionStrategy{}
	default:
		return genericStrategy{}
	}
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger for the analyzer.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// Analyzer runs all derivation stages for one normalized session.
type Analyzer struct {
	logger logger.Logger
}

// NewAnalyzer creates an Analyzer with configuration options.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: logger.Get().Named("skill"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Derive produces the full DerivedMetrics for one session. It is a pure
// function of its inputs; calling it twice on identical telemetry yields
// identical metrics.
func (a *Analyzer) Derive(ctx context.Context, s model.SessionTelemetry, n telemetry.Normalized) model.DerivedMetrics {
	motor, reactionMS := StrategyFor(n.Family).DeriveMotor(s, n)
	dm := model.DerivedMetrics{
		Motor:             motor,
		Cognitive:         DeriveCognitive(s, n.DurationMinutes),
		Engagement:        DeriveEngagement(s, n.DurationMinutes),
		HandDominance:     DeriveHandDominance(s),
		AverageReactionMS: reactionMS,
	}
	a.logger.Debug(ctx, "derived session metrics",
		logger.String("sessionID", s.SessionID),
		logger.String("family", string(n.Family)),
		logger.Int("motorDims", len(dm.Motor)),
		logger.Int("cognitiveDims", len(dm.Cognitive)),
	)
	return dm
}

// clamp bounds a dimension score to [0,100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxDimensionScore {
		return maxDimensionScore
	}
	return v
}

// capAt bounds v from above.
func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

// levelOrOne treats an unreported level as level 1.
func levelOrOne(s model.SessionTelemetry) float64 {
	if s.LevelReached < 1 {
		return 1
	}
	return float64(s.LevelReached)
}

// bilateralCoordination scores hand balance from usage counts, falling back
// to the supplied default when no hand-usage data exists.
func bilateralCoordination(s model.SessionTelemetry, fallback float64) float64 {
	total := s.HandUsageTotal()
	if total <= 0 {
		return fallback
	}
	diff := s.LeftHandUsage - s.RightHandUsage
	if diff < 0 {
		diff = -diff
	}
	return clamp(100 - float64(diff)/float64(total)*100)
}
