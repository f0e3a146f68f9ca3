package skill

import (
	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/telemetry"
)

// Raw payload keys consumed by the tracing strategy.
const (
	rawKeySmoothness   = "smoothness"
	rawKeyHandTracking = "handTrackingData"
)

// Tracing derivation constants.
const (
	tracingLevelBonusCap      = 20.0
	tracingLevelBonusPerLevel = 4.0
	completionEfficiencyGain  = 30.0
	speedAccuracyGain         = 0.1
)

// tracingStrategy derives motor dimensions for hand-path-following games.
type tracingStrategy struct{}

func (tracingStrategy) DeriveMotor(s model.SessionTelemetry, n telemetry.Normalized) (map[string]float64, float64) {
	acc := n.Accuracy
	m := map[string]float64{
		model.DimHandEyeCoordination: acc,
	}

	// Smoothness: explicit payload value wins, then a computation over the
	// tracked hand path, then an estimate from accuracy and level.
	var smoothness float64
	if v, ok := n.Float(rawKeySmoothness); ok {
		smoothness = clamp(v)
	} else if points := n.Points(rawKeyHandTracking); len(points) >= minTrackPoints {
		computed, ok := movementSmoothness(points)
		if !ok {
			computed = defaultSmoothness
		}
		smoothness = computed
	} else {
		levelBonus := capAt(levelOrOne(s)*tracingLevelBonusPerLevel, tracingLevelBonusCap)
		smoothness = capAt(acc*0.8+levelBonus, maxDimensionScore)
	}
	m[model.DimMovementSmoothness] = smoothness
	m[model.DimFineMotorControl] = acc*0.7 + smoothness*0.3

	if s.DurationSeconds > 0 {
		efficiency := levelOrOne(s) / (s.DurationSeconds / 60)
		m[model.DimCompletionRate] = capAt(efficiency*completionEfficiencyGain, maxDimensionScore)
		if s.Score > 0 {
			m[model.DimSpeedAccuracyBalance] = capAt(float64(s.Score)*acc/s.DurationSeconds*speedAccuracyGain, maxDimensionScore)
		} else {
			m[model.DimSpeedAccuracyBalance] = acc * 0.7
		}
	} else {
		m[model.DimCompletionRate] = acc * 0.6
		m[model.DimSpeedAccuracyBalance] = acc * 0.7
	}

	m[model.DimBilateralCoord] = bilateralCoordination(s, defaultBilateralTracing)
	return m, 0
}
