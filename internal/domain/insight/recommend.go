package insight

import (
	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/telemetry"
)

// Rule-firing constants for session-scope recommendations.
const (
	durationQualityRuleCeil  = 60.0
	engagementOverallCeil    = 40.0
	dominanceDeviationFloor  = 30.0
	levelProgressionRuleCeil = 2
)

// recommend evaluates the fixed session-scope rule table in order and
// truncates the result. The list is never empty: when no rule fires, two
// default encouragement entries are substituted.
func (g *Generator) recommend(s model.SessionTelemetry, family telemetry.GameFamily, dm model.DerivedMetrics, cs model.CompositeScore) []model.Recommendation {
	var recs []model.Recommendation

	// Motor skill rules, with game-specific wording.
	if cs.Motor < g.motorThresholds.Developing {
		switch family {
		case telemetry.FamilyTracing:
			recs = append(recs, model.Recommendation{
				Title:       "Improve Tracing Skills",
				Description: "Practice slow, smooth tracing movements to improve hand-eye coordination",
				Category:    "Motor Skills",
				Priority:    model.PriorityHigh,
				Icon:        "pencil-alt",
			})
		case telemetry.FamilyReaction:
			recs = append(recs, model.Recommendation{
				Title:       "Target Practice",
				Description: "Focus on accurate pointing and tapping rather than speed",
				Category:    "Coordination",
				Priority:    model.PriorityHigh,
				Icon:        "bullseye",
			})
		}
		recs = append(recs, model.Recommendation{
			Title:       "Daily Fine Motor Practice",
			Description: "Spend 10-15 minutes daily on fine motor activities like drawing or puzzles",
			Category:    "Practice",
			Priority:    model.PriorityMedium,
			Icon:        "clock",
		})
	} else if cs.Motor >= g.motorThresholds.Good {
		recs = append(recs, model.Recommendation{
			Title:       "Excellent Motor Skills!",
			Description: "Your hand-eye coordination is developing very well. Keep practicing!",
			Category:    "Encouragement",
			Priority:    model.PriorityLow,
			Icon:        "thumbs-up",
		})
	}

	// Cognitive rules.
	if cs.Cognitive < g.cognitiveThresholds.Developing {
		recs = append(recs,
			model.Recommendation{
				Title:       "Build Attention Span",
				Description: "Start with shorter practice sessions and gradually increase duration",
				Category:    "Attention",
				Priority:    model.PriorityHigh,
				Icon:        "brain",
			},
			model.Recommendation{
				Title:       "Memory Games",
				Description: "Practice pattern recognition and memory games to boost working memory",
				Category:    "Memory",
				Priority:    model.PriorityMedium,
				Icon:        "puzzle-piece",
			},
		)
	} else if cs.Cognitive >= g.cognitiveThresholds.Good {
		recs = append(recs, model.Recommendation{
			Title:       "Great Focus!",
			Description: "Your attention and cognitive skills are showing excellent development",
			Category:    "Encouragement",
			Priority:    model.PriorityLow,
			Icon:        "star",
		})
	}

	// Session-management rule from engagement signals.
	if dm.Engagement[model.DimDurationQuality] < durationQualityRuleCeil &&
		dm.Engagement[model.DimEngagementOverall] < engagementOverallCeil {
		recs = append(recs, model.Recommendation{
			Title:       "Optimize Session Length",
			Description: "Try playing for 3-5 minutes for better engagement and learning",
			Category:    "Session Management",
			Priority:    model.PriorityMedium,
			Icon:        "hourglass-half",
		})
	}

	// Hand-dominance rule.
	if dm.HandDominance[model.DimDominanceConsistency] > dominanceDeviationFloor {
		recs = append(recs, model.Recommendation{
			Title:       "Practice with Both Hands",
			Description: "Encourage using both hands equally to improve bilateral coordination",
			Category:    "Coordination",
			Priority:    model.PriorityMedium,
			Icon:        "hands-helping",
		})
	}

	// Level-progression rule.
	if s.LevelReached < levelProgressionRuleCeil {
		recs = append(recs, model.Recommendation{
			Title:       "Focus on Accuracy First",
			Description: "Master each level completely before moving to the next for better skill building",
			Category:    "Strategy",
			Priority:    model.PriorityMedium,
			Icon:        "target",
		})
	}

	if len(recs) == 0 {
		recs = defaultSessionRecommendations()
	}
	if len(recs) > g.maxRecommendations {
		recs = recs[:g.maxRecommendations]
	}
	return recs
}

// defaultSessionRecommendations is the substitute pair used when no rule
// fires.
func defaultSessionRecommendations() []model.Recommendation {
	return []model.Recommendation{
		{
			Title:       "Keep Up the Great Work!",
			Description: "Continue regular practice to maintain and improve your skills",
			Category:    "General",
			Priority:    model.PriorityLow,
			Icon:        "heart",
		},
		{
			Title:       "Try Different Challenges",
			Description: "Explore both games to develop different aspects of motor and cognitive skills",
			Category:    "Variety",
			Priority:    model.PriorityLow,
			Icon:        "gamepad",
		},
	}
}
