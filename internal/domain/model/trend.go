package model

import "time"

// TrendDirection labels the sign of a fitted slope.
type TrendDirection string

const (
	DirectionImproving TrendDirection = "improving"
	DirectionStable    TrendDirection = "stable"
	DirectionDeclining TrendDirection = "declining"
)

// MotorTrend is the per-skill motor descriptor of a TrendSummary.
type MotorTrend struct {
	AverageAccuracy float64        `json:"average_accuracy"` // mean accuracy of the recent window
	Direction       TrendDirection `json:"direction"`        // from the accuracy slope
	ScoreSlope      float64        `json:"score_slope"`
	Consistency     float64        `json:"consistency"` // 100 - min(100, stddev(accuracy))
}

// CognitiveTrend is the per-skill cognitive descriptor of a TrendSummary.
type CognitiveTrend struct {
	AttentionMinutes float64        `json:"attention_minutes"` // mean recent duration in minutes
	Engagement       TrendDirection `json:"engagement"`        // recent vs earlier duration
	MaxLevel         int            `json:"max_level"`         // highest level in the recent window
	MeanLevel        float64        `json:"mean_level"`        // working-memory indicator
}

// TrendSummary aggregates an ordered sequence of sessions inside the
// lookback window. It is regenerated on demand, never updated in place.
type TrendSummary struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	SessionCount     int              `json:"session_count"`
	ScoreSlope       float64          `json:"score_slope"`
	AccuracySlope    float64          `json:"accuracy_slope"`
	Trajectory       Trajectory       `json:"trajectory"`
	Strengths        []string         `json:"strengths"`
	ImprovementAreas []string         `json:"improvement_areas"`
	MotorRisk        float64          `json:"motor_risk"`
	AttentionRisk    float64          `json:"attention_risk"`
	OverallRisk      float64          `json:"overall_risk"`
	Motor            MotorTrend       `json:"motor"`
	Cognitive        CognitiveTrend   `json:"cognitive"`
	Recommendations  []Recommendation `json:"recommendations"`
	Confidence       float64          `json:"confidence"`
	GeneratedAt      time.Time        `json:"generated_at"`
}
