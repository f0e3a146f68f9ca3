// Package insight turns one analyzed session into the persisted insight
// bundle: composite scores, qualitative levels, risk indicators, strengths,
// improvement areas and prioritized recommendations.
package insight

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/scoring"
	"github.com/lumora/skillsense/internal/domain/skill"
	"github.com/lumora/skillsense/internal/domain/telemetry"
	"github.com/lumora/skillsense/pkg/logger"
)

// Session-scope generation constants.
const (
	defaultMaxRecommendations = 5
	maxHighlights             = 4    // cap for strengths and improvement areas
	sessionConfidence         = 0.85 // fixed confidence for single-session bundles
	riskPivotScore            = 75.0 // composite score at which risk reaches zero
	trajectoryExcellentFloor  = 80.0
	trajectorySteadyFloor     = 65.0
	trajectoryAttentionCeil   = 40.0
)

// Thresholds are the ordered cut points mapping a composite score to a
// qualitative level.
type Thresholds struct {
	Excellent  float64
	Good       float64
	Developing float64
}

// DefaultMotorThresholds returns the fixed motor classification table.
func DefaultMotorThresholds() Thresholds {
	return Thresholds{Excellent: 85, Good: 70, Developing: 50}
}

// DefaultCognitiveThresholds returns the fixed cognitive classification table.
func DefaultCognitiveThresholds() Thresholds {
	return Thresholds{Excellent: 90, Good: 75, Developing: 55}
}

// Level classifies a composite score.
func (t Thresholds) Level(score float64) model.SkillLevel {
	switch {
	case score >= t.Excellent:
		return model.LevelExcellent
	case score >= t.Good:
		return model.LevelGood
	case score >= t.Developing:
		return model.LevelDeveloping
	default:
		return model.LevelNeedsAttention
	}
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithScorer sets a custom composite scorer.
func WithScorer(s *scoring.Composite) Option {
	return func(g *Generator) {
		if s != nil {
			g.scorer = s
		}
	}
}

// WithMotorThresholds overrides the motor classification table.
func WithMotorThresholds(t Thresholds) Option {
	return func(g *Generator) { g.motorThresholds = t }
}

// WithCognitiveThresholds overrides the cognitive classification table.
func WithCognitiveThresholds(t Thresholds) Option {
	return func(g *Generator) { g.cognitiveThresholds = t }
}

// WithMaxRecommendations caps the recommendation list length.
func WithMaxRecommendations(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxRecommendations = n
		}
	}
}

// WithLogger sets a custom logger for the generator.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithIDGenerator overrides insight ID minting, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(fn func() time.Time) Option {
	return func(g *Generator) {
		if fn != nil {
			g.now = fn
		}
	}
}

// Generator runs the per-session pipeline:
// normalize -> derive -> score -> classify -> recommend -> summarize.
type Generator struct {
	normalizer          *telemetry.Normalizer
	analyzer            *skill.Analyzer
	scorer              *scoring.Composite
	motorThresholds     Thresholds
	cognitiveThresholds Thresholds
	maxRecommendations  int
	newID               func() string
	now                 func() time.Time
	logger              logger.Logger
}

// NewGenerator creates a Generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		scorer:              scoring.NewComposite(),
		motorThresholds:     DefaultMotorThresholds(),
		cognitiveThresholds: DefaultCognitiveThresholds(),
		maxRecommendations:  defaultMaxRecommendations,
		newID:               uuid.NewString,
		now:                 time.Now,
		logger:              logger.Get().Named("insight"),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.normalizer = telemetry.NewNormalizer(telemetry.WithLogger(g.logger))
	g.analyzer = skill.NewAnalyzer(skill.WithLogger(g.logger))
	return g
}

// Analyze produces the insight bundle and the flat progress snapshot for one
// session. The computation is pure except for ID minting and timestamps.
func (g *Generator) Analyze(ctx context.Context, s model.SessionTelemetry) (model.InsightBundle, model.ProgressSnapshot) {
	normalized := g.normalizer.Normalize(ctx, s)
	dm := g.analyzer.Derive(ctx, s, normalized)
	cs := g.scorer.Score(dm)

	strengths, improvements := identifyHighlights(dm, cs)

	bundle := model.InsightBundle{
		ID:               g.newID(),
		UserID:           s.UserID,
		SessionID:        s.SessionID,
		MotorScore:       cs.Motor,
		CognitiveScore:   cs.Cognitive,
		MotorLevel:       g.motorThresholds.Level(cs.Motor),
		CognitiveLevel:   g.cognitiveThresholds.Level(cs.Cognitive),
		Trajectory:       classifyTrajectory(cs),
		Recommendations:  g.recommend(s, normalized.Family, dm, cs),
		Strengths:        strengths,
		ImprovementAreas: improvements,
		MotorRisk:        riskScore(cs.Motor),
		AttentionRisk:    riskScore(cs.Cognitive),
		Confidence:       sessionConfidence,
		GeneratedAt:      g.now(),
	}
	bundle.OverallRisk = (bundle.MotorRisk + bundle.AttentionRisk) / 2

	g.logger.Info(ctx, "session analyzed",
		logger.String("sessionID", s.SessionID),
		logger.String("userID", s.UserID),
		logger.Float64("motorScore", cs.Motor),
		logger.Float64("cognitiveScore", cs.Cognitive),
		logger.String("trajectory", string(bundle.Trajectory)),
	)

	return bundle, g.snapshot(s, dm, cs)
}

// snapshot flattens the key dimensions for the progress record.
func (g *Generator) snapshot(s model.SessionTelemetry, dm model.DerivedMetrics, cs model.CompositeScore) model.ProgressSnapshot {
	return model.ProgressSnapshot{
		ID:                 g.newID(),
		UserID:             s.UserID,
		SessionID:          s.SessionID,
		MotorScore:         cs.Motor,
		CognitiveScore:     cs.Cognitive,
		HandEyeCoord:       dm.Motor[model.DimHandEyeCoordination],
		FineMotor:          dm.Motor[model.DimFineMotorControl],
		BilateralCoord:     dm.Motor[model.DimBilateralCoord],
		ReactionMS:         dm.AverageReactionMS,
		Attention:          dm.Cognitive[model.DimSustainedAttention],
		WorkingMemory:      dm.Cognitive[model.DimWorkingMemory],
		ExecutiveFunction:  dm.Cognitive[model.DimExecutiveFunction],
		ProcessingSpeed:    dm.Cognitive[model.DimProcessingSpeed],
		OverallDevelopment: (cs.Motor + cs.Cognitive) / 2,
		AssessedAt:         g.now(),
	}
}

// classifyTrajectory labels the single-session development direction.
func classifyTrajectory(cs model.CompositeScore) model.Trajectory {
	switch {
	case cs.Motor >= trajectoryExcellentFloor && cs.Cognitive >= trajectoryExcellentFloor:
		return model.TrajectoryExcellentProgress
	case cs.Motor >= trajectorySteadyFloor && cs.Cognitive >= trajectorySteadyFloor:
		return model.TrajectorySteadyImprovement
	case cs.Motor < trajectoryAttentionCeil || cs.Cognitive < trajectoryAttentionCeil:
		return model.TrajectoryNeedsAttention
	default:
		return model.TrajectoryStable
	}
}

// riskScore converts a composite score to a 0-100 risk value; scores at or
// above the pivot carry no risk.
func riskScore(composite float64) float64 {
	risk := (riskPivotScore - composite) / riskPivotScore * 100
	if risk < 0 {
		return 0
	}
	if risk > 100 {
		return 100
	}
	return risk
}
