// Package scoring aggregates derived skill dimensions into composite scores.
package scoring

import (
	"github.com/lumora/skillsense/internal/domain/model"
)

const maxScoreValue = 100.0

// Weights maps dimension names to their share of a composite score.
type Weights map[string]float64

// DefaultMotorWeights returns the fixed motor weight table.
func DefaultMotorWeights() Weights {
	return Weights{
		model.DimHandEyeCoordination: 0.30,
		model.DimFineMotorControl:    0.25,
		model.DimMovementSmoothness:  0.20,
		model.DimBilateralCoord:      0.15,
		model.DimMovementPrecision:   0.10,
	}
}

// DefaultCognitiveWeights returns the fixed cognitive weight table.
func DefaultCognitiveWeights() Weights {
	return Weights{
		model.DimSustainedAttention:   0.30,
		model.DimWorkingMemory:        0.25,
		model.DimExecutiveFunction:    0.20,
		model.DimProcessingSpeed:      0.15,
		model.DimCognitiveFlexibility: 0.10,
	}
}

// Option applies a configuration option to the Composite scorer.
type Option func(*Composite)

// WithMotorWeights overrides the motor weight table. Non-positive weights
// are dropped.
func WithMotorWeights(w map[string]float64) Option {
	return func(c *Composite) {
		if len(w) > 0 {
			c.motor = copyPositive(w)
		}
	}
}

// WithCognitiveWeights overrides the cognitive weight table. Non-positive
// weights are dropped.
func WithCognitiveWeights(w map[string]float64) Option {
	return func(c *Composite) {
		if len(w) > 0 {
			c.cognitive = copyPositive(w)
		}
	}
}

// Composite computes renormalizing weighted sums over dimension mappings.
// The weight tables are fixed at construction; the scorer holds no mutable
// state and is safe for concurrent use.
type Composite struct {
	motor     Weights
	cognitive Weights
}

// NewComposite creates a Composite scorer with configuration options.
func NewComposite(opts ...Option) *Composite {
	c := &Composite{
		motor:     DefaultMotorWeights(),
		cognitive: DefaultCognitiveWeights(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score computes both composite scores for one set of derived metrics.
func (c *Composite) Score(dm model.DerivedMetrics) model.CompositeScore {
	return model.CompositeScore{
		Motor:     weightedScore(dm.Motor, c.motor),
		Cognitive: weightedScore(dm.Cognitive, c.cognitive),
	}
}

// MotorScore aggregates a motor dimension mapping.
func (c *Composite) MotorScore(dims map[string]float64) float64 {
	return weightedScore(dims, c.motor)
}

// CognitiveScore aggregates a cognitive dimension mapping.
func (c *Composite) CognitiveScore(dims map[string]float64) float64 {
	return weightedScore(dims, c.cognitive)
}

// weightedScore is Σ(value×weight) / Σ(weight present), clamped to [0,100].
// Renormalizing by the weight actually present keeps partial telemetry from
// dragging the score toward zero; an empty mapping scores exactly 0.
func weightedScore(dims map[string]float64, weights Weights) float64 {
	var sum, totalWeight float64
	for dim, weight := range weights {
		value, ok := dims[dim]
		if !ok {
			continue
		}
		sum += value * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	score := sum / totalWeight
	if score < 0 {
		return 0
	}
	if score > maxScoreValue {
		return maxScoreValue
	}
	return score
}

// copyPositive copies a weight map, dropping non-positive entries, so later
// caller mutation cannot affect the scorer.
func copyPositive(w map[string]float64) Weights {
	out := make(Weights, len(w))
	for dim, weight := range w {
		if weight > 0 {
			out[dim] = weight
		}
	}
	return out
}
