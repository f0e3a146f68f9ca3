package model

// DerivedMetrics is the per-session intermediate result of metric derivation.
// It is owned by a single analysis run and never persisted directly. Every
// numeric leaf is clamped to [0,100] before aggregation, except
// AverageReactionMS which is informational raw milliseconds.
type DerivedMetrics struct {
	Motor             map[string]float64 // motor dimension -> score in [0,100]
	Cognitive         map[string]float64 // cognitive dimension -> score in [0,100]
	Engagement        map[string]float64 // engagement signal -> score in [0,100]
	HandDominance     map[string]float64 // hand-usage profile
	AverageReactionMS float64            // mean reaction time in ms, 0 when unknown
}

// CompositeScore aggregates derived dimensions into two scalar skill scores.
type CompositeScore struct {
	Motor     float64 // in [0,100]; exactly 0 when no motor dimension is present
	Cognitive float64 // in [0,100]; exactly 0 when no cognitive dimension is present
}

// Motor dimension keys produced by the derivation strategies.
const (
	DimHandEyeCoordination  = "hand_eye_coordination"
	DimMovementSmoothness   = "movement_smoothness"
	DimFineMotorControl     = "fine_motor_control"
	DimCompletionRate       = "completion_rate"
	DimSpeedAccuracyBalance = "speed_accuracy_balance"
	DimBilateralCoord       = "bilateral_coordination"
	DimReactionTimeScore    = "reaction_time_score"
	DimReactionConsistency  = "reaction_consistency"
	DimMovementPrecision    = "movement_precision"
	DimSpeedAdaptation      = "speed_adaptation"
	DimMotorControlOverall  = "motor_control_overall"
)

// Cognitive dimension keys.
const (
	DimSustainedAttention   = "sustained_attention"
	DimWorkingMemory        = "working_memory"
	DimExecutiveFunction    = "executive_function"
	DimProcessingSpeed      = "processing_speed"
	DimCognitiveFlexibility = "cognitive_flexibility"
	DimDecisionMaking       = "decision_making"
)

// Engagement signal keys.
const (
	DimDurationQuality      = "duration_quality"
	DimCompletionEngagement = "completion_engagement"
	DimScoreProgression     = "score_progression"
	DimEngagementOverall    = "overall"
)

// Hand-dominance profile keys.
const (
	DimLeftPercentage       = "left_percentage"
	DimRightPercentage      = "right_percentage"
	DimDominanceConsistency = "dominance_consistency"
	DimBilateralBalance     = "bilateral_balance"
)
