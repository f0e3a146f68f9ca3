package skill

import (
	"github.com/montanaflynn/stats"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/telemetry"
)

// Raw payload keys consumed by the reaction strategy.
const (
	rawKeyAverageReaction = "averageReactionTime"
	rawKeyReactionTimes   = "reactionTimes"
)

// Reaction derivation constants. The linear mapping ceiling (1500ms) and
// divisor are empirically chosen tunables, preserved for behavioral
// compatibility: 200-2000ms is the typical range, good play lands near
// 300-800ms.
const (
	reactionCeilingMS         = 1500.0
	reactionDivisor           = 13.0
	reactionStddevDivisor     = 20.0
	reactionEstimateGain      = 2.0
	speedAdaptationPerLevel   = 20.0
	speedAdaptationLevelShare = 0.3
)

// reactionStrategy derives motor dimensions for timed-target games.
type reactionStrategy struct{}

func (reactionStrategy) DeriveMotor(s model.SessionTelemetry, n telemetry.Normalized) (map[string]float64, float64) {
	acc := n.Accuracy
	m := map[string]float64{
		model.DimHandEyeCoordination: acc,
	}

	var reactionMS float64
	if avg, ok := n.Float(rawKeyAverageReaction); ok {
		m[model.DimReactionTimeScore] = reactionScore(avg)
		reactionMS = avg
	} else if times := n.Floats(rawKeyReactionTimes); len(times) > 0 {
		mean, err := stats.Mean(stats.Float64Data(times))
		if err == nil {
			m[model.DimReactionTimeScore] = reactionScore(mean)
			reactionMS = mean
		}
		if len(times) > 1 {
			if sd, err := stats.StandardDeviation(stats.Float64Data(times)); err == nil {
				m[model.DimReactionConsistency] = clamp(100 - capAt(sd/reactionStddevDivisor, maxDimensionScore))
			}
		}
	} else if s.DurationSeconds > 0 && s.SuccessfulAttempts > 0 {
		// No reaction samples: estimate from successful attempts per minute.
		perMinute := float64(s.SuccessfulAttempts) / (s.DurationSeconds / 60)
		m[model.DimReactionTimeScore] = capAt(perMinute*reactionEstimateGain, maxDimensionScore)
		m[model.DimReactionConsistency] = acc * 0.8
	} else {
		m[model.DimReactionTimeScore] = acc * 0.9
		m[model.DimReactionConsistency] = acc * 0.8
	}

	m[model.DimMovementPrecision] = acc

	levelAdaptation := capAt(levelOrOne(s)*speedAdaptationPerLevel, maxDimensionScore)
	m[model.DimSpeedAdaptation] = acc*0.7 + levelAdaptation*speedAdaptationLevelShare

	m[model.DimBilateralCoord] = bilateralCoordination(s, defaultBilateralReaction)
	return m, reactionMS
}

// reactionScore maps a mean reaction time in milliseconds onto [0,100];
// lower times score higher.
func reactionScore(avgMS float64) float64 {
	return clamp((reactionCeilingMS - avgMS) / reactionDivisor)
}
