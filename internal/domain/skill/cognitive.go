package skill

import (
	"github.com/lumora/skillsense/internal/domain/model"
)

// Cognitive derivation constants. Sustained attention peaks for sessions in
// the 3-10 minute range; the 8-minute divisor and the per-level gains are
// tunables preserved for behavioral compatibility.
const (
	attentionMinutesDivisor = 8.0
	attentionFloor          = 20.0
	attentionDefault        = 40.0
	consistencyBonusGain    = 20.0
	memoryPerLevel          = 18.0
	errorRatePenalty        = 120.0
	executiveDefault        = 70.0
	actionsPerMinuteTarget  = 15.0
	processingSpeedDefault  = 50.0
	flexibilityPerLevel     = 25.0
	flexibilityBaseDefault  = 30.0
	decisionQualityShare    = 70.0
	decisionRateShare       = 30.0
	decisionDefault         = 60.0
)

// DeriveCognitive extracts cognitive dimensions from telemetry and the
// normalized session duration. Every absent field has an explicit default.
func DeriveCognitive(s model.SessionTelemetry, durationMinutes float64) map[string]float64 {
	m := make(map[string]float64, 6)

	// Sustained attention from session length, boosted for a high success
	// ratio.
	if durationMinutes > 0 {
		attention := clamp(durationMinutes / attentionMinutesDivisor * 100)
		if attention < attentionFloor {
			attention = attentionFloor
		}
		if s.TotalAttempts > 0 {
			bonus := float64(s.SuccessfulAttempts) / float64(s.TotalAttempts) * consistencyBonusGain
			attention = capAt(attention+bonus, maxDimensionScore)
		}
		m[model.DimSustainedAttention] = attention
	} else {
		m[model.DimSustainedAttention] = attentionDefault
	}

	// Working memory from level progression.
	m[model.DimWorkingMemory] = capAt(levelOrOne(s)*memoryPerLevel, maxDimensionScore)

	// Executive function from error management.
	if s.TotalAttempts > 0 {
		errorRate := float64(s.FailedAttempts()) / float64(s.TotalAttempts)
		m[model.DimExecutiveFunction] = clamp(100 - errorRate*errorRatePenalty)
	} else {
		m[model.DimExecutiveFunction] = executiveDefault
	}

	// Processing speed from successful actions per minute.
	if durationMinutes > 0 && s.SuccessfulAttempts > 0 {
		perMinute := float64(s.SuccessfulAttempts) / durationMinutes
		m[model.DimProcessingSpeed] = clamp(perMinute / actionsPerMinuteTarget * 100)
	} else {
		m[model.DimProcessingSpeed] = processingSpeedDefault
	}

	// Cognitive flexibility from adaptation to increasing difficulty.
	if s.LevelReached > 1 {
		m[model.DimCognitiveFlexibility] = capAt((levelOrOne(s)-1)*flexibilityPerLevel, maxDimensionScore)
	} else {
		m[model.DimCognitiveFlexibility] = flexibilityBaseDefault
	}

	// Decision making from accuracy under time pressure.
	if s.DurationSeconds > 0 {
		attempts := float64(s.TotalAttempts)
		if attempts == 0 {
			attempts = 1
		}
		decisionsPerSecond := attempts / s.DurationSeconds
		decisionQuality := float64(s.SuccessfulAttempts) / attempts
		m[model.DimDecisionMaking] = capAt(decisionQuality*decisionQualityShare+decisionsPerSecond*decisionRateShare, maxDimensionScore)
	} else {
		m[model.DimDecisionMaking] = decisionDefault
	}

	return m
}
