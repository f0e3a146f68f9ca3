package skill

import (
	"github.com/lumora/skillsense/internal/domain/model"
)

// Engagement band constants. The 3-8 minute sweet spot is an empirically
// chosen tunable, preserved for behavioral compatibility.
const (
	engagementSweetSpotLow   = 3.0
	engagementSweetSpotHigh  = 8.0
	engagementOverrunPenalty = 5.0
	engagementOverrunFloor   = 60.0
	engagementSubMinuteScore = 30.0
	completionPerLevel       = 25.0
	scoreProgressionGain     = 2.0

	durationQualityWeight = 0.4
	completionWeight      = 0.35
	progressionWeight     = 0.25
)

// DeriveEngagement scores session engagement from its duration, level
// progression and score rate. A zero-minute duration yields the sub-minute
// floor, never a fault.
func DeriveEngagement(s model.SessionTelemetry, durationMinutes float64) map[string]float64 {
	m := make(map[string]float64, 4)
	m[model.DimDurationQuality] = durationQuality(durationMinutes)
	m[model.DimCompletionEngagement] = capAt(levelOrOne(s)*completionPerLevel, maxDimensionScore)

	if s.Score > 0 && durationMinutes > 0 {
		perMinute := float64(s.Score) / durationMinutes
		m[model.DimScoreProgression] = capAt(perMinute*scoreProgressionGain, maxDimensionScore)
	} else {
		m[model.DimScoreProgression] = 0
	}

	m[model.DimEngagementOverall] = m[model.DimDurationQuality]*durationQualityWeight +
		m[model.DimCompletionEngagement]*completionWeight +
		m[model.DimScoreProgression]*progressionWeight
	return m
}

// durationQuality is the fixed piecewise band function over session minutes.
func durationQuality(minutes float64) float64 {
	switch {
	case minutes >= engagementSweetSpotLow && minutes <= engagementSweetSpotHigh:
		return 100
	case minutes >= 2 && minutes < engagementSweetSpotLow:
		return 80
	case minutes >= 1 && minutes < 2:
		return 60
	case minutes < 1:
		return engagementSubMinuteScore
	default: // longer than the sweet spot
		quality := 100 - (minutes-engagementSweetSpotHigh)*engagementOverrunPenalty
		if quality < engagementOverrunFloor {
			return engagementOverrunFloor
		}
		return quality
	}
}
