package model

import "time"

// SkillLevel is the qualitative label attached to a composite score.
type SkillLevel string

const (
	LevelExcellent      SkillLevel = "excellent"
	LevelGood           SkillLevel = "good"
	LevelDeveloping     SkillLevel = "developing"
	LevelNeedsAttention SkillLevel = "needs_attention"
)

// Trajectory summarizes the direction of a user's development.
type Trajectory string

// Session-scope trajectories.
const (
	TrajectoryExcellentProgress Trajectory = "excellent_progress"
	TrajectorySteadyImprovement Trajectory = "steady_improvement"
	TrajectoryStable            Trajectory = "stable"
	TrajectoryNeedsAttention    Trajectory = "needs_attention"
)

// Trend-scope trajectory for strongly positive slopes. The remaining
// trend labels reuse the session-scope constants above.
const TrajectoryExcellentImprovement Trajectory = "excellent_improvement"

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one entry of the ordered, capped recommendation list.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	Icon        string   `json:"icon"`
}

// InsightBundle is the per-session analysis output written to the insight
// store. A newer bundle supersedes an older one; bundles are never mutated.
type InsightBundle struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	SessionID        string           `json:"session_id"`
	MotorScore       float64          `json:"motor_score"`
	CognitiveScore   float64          `json:"cognitive_score"`
	MotorLevel       SkillLevel       `json:"motor_level"`
	CognitiveLevel   SkillLevel       `json:"cognitive_level"`
	Trajectory       Trajectory       `json:"trajectory"`
	Recommendations  []Recommendation `json:"recommendations"`
	Strengths        []string         `json:"strengths"`
	ImprovementAreas []string         `json:"improvement_areas"`
	MotorRisk        float64          `json:"motor_risk"`
	AttentionRisk    float64          `json:"attention_risk"`
	OverallRisk      float64          `json:"overall_risk"`
	Confidence       float64          `json:"confidence"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// ProgressSnapshot is the flat per-dimension record appended alongside each
// InsightBundle, mirroring the dashboard's progress table.
type ProgressSnapshot struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	SessionID          string    `json:"session_id"`
	MotorScore         float64   `json:"motor_score"`
	CognitiveScore     float64   `json:"cognitive_score"`
	HandEyeCoord       float64   `json:"hand_eye_coordination"`
	FineMotor          float64   `json:"fine_motor"`
	BilateralCoord     float64   `json:"bilateral_coordination"`
	ReactionMS         float64   `json:"reaction_ms"`
	Attention          float64   `json:"attention"`
	WorkingMemory      float64   `json:"working_memory"`
	ExecutiveFunction  float64   `json:"executive_function"`
	ProcessingSpeed    float64   `json:"processing_speed"`
	OverallDevelopment float64   `json:"overall_development"`
	AssessedAt         time.Time `json:"assessed_at"`
}
