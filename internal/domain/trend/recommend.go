package trend

import (
	"github.com/lumora/skillsense/internal/domain/model"
)

const highRiskFloor = 60.0

// recommendLongTerm evaluates the fixed history-scope rule table in order
// and truncates the result. The list is never empty: when no rule fires,
// two default maintenance entries are substituted.
func (a *Analyzer) recommendLongTerm(summary model.TrendSummary, sessions []model.SessionTelemetry) []model.Recommendation {
	var recs []model.Recommendation

	switch summary.Trajectory {
	case model.TrajectoryExcellentImprovement:
		recs = append(recs,
			model.Recommendation{
				Title:       "Outstanding Progress!",
				Description: "Your skills are improving rapidly. Keep up the excellent work!",
				Category:    "Motivation",
				Priority:    model.PriorityHigh,
				Icon:        "trophy",
			},
			model.Recommendation{
				Title:       "Try Advanced Challenges",
				Description: "You're ready for harder levels and new game modes",
				Category:    "Progression",
				Priority:    model.PriorityMedium,
				Icon:        "arrow-up",
			},
		)
	case model.TrajectoryNeedsAttention:
		recs = append(recs,
			model.Recommendation{
				Title:       "Adjust Practice Approach",
				Description: "Try shorter sessions with more breaks, or easier difficulty levels",
				Category:    "Strategy",
				Priority:    model.PriorityHigh,
				Icon:        "bullseye",
			},
			model.Recommendation{
				Title:       "Seek Additional Support",
				Description: "Consider consulting with a pediatric occupational therapist",
				Category:    "Support",
				Priority:    model.PriorityMedium,
				Icon:        "user-friends",
			},
		)
	}

	if summary.MotorRisk > highRiskFloor {
		recs = append(recs, model.Recommendation{
			Title:       "Focus on Motor Skills",
			Description: "Prioritize tracing and fine motor activities in daily practice",
			Category:    "Motor Development",
			Priority:    model.PriorityHigh,
			Icon:        "hand-paper",
		})
	}
	if summary.AttentionRisk > highRiskFloor {
		recs = append(recs, model.Recommendation{
			Title:       "Build Attention Gradually",
			Description: "Start with 2-3 minute sessions and slowly increase duration",
			Category:    "Attention",
			Priority:    model.PriorityHigh,
			Icon:        "brain",
		})
	}

	if distinctGames(sessions) < varietyGameFloor {
		recs = append(recs, model.Recommendation{
			Title:       "Try Different Games",
			Description: "Playing various games develops different skills more effectively",
			Category:    "Variety",
			Priority:    model.PriorityMedium,
			Icon:        "gamepad",
		})
	}
	if distinctDays(sessions) < frequencyDaysFloor {
		recs = append(recs, model.Recommendation{
			Title:       "Increase Practice Frequency",
			Description: "Aim for short daily practice sessions for better skill development",
			Category:    "Schedule",
			Priority:    model.PriorityMedium,
			Icon:        "calendar-alt",
		})
	}

	if len(recs) == 0 {
		recs = defaultLongTermRecommendations()
	}
	if len(recs) > a.maxRecommendations {
		recs = recs[:a.maxRecommendations]
	}
	return recs
}

// defaultLongTermRecommendations is the substitute pair used when no rule
// fires.
func defaultLongTermRecommendations() []model.Recommendation {
	return []model.Recommendation{
		{
			Title:       "Maintain Current Progress",
			Description: "Continue your current practice routine to keep improving",
			Category:    "Maintenance",
			Priority:    model.PriorityLow,
			Icon:        "heart",
		},
		{
			Title:       "Set New Goals",
			Description: "Challenge yourself with specific targets like higher accuracy or levels",
			Category:    "Goals",
			Priority:    model.PriorityLow,
			Icon:        "flag",
		},
	}
}

// distinctGames counts the different game names across the history. Unnamed
// sessions do not count as a game.
func distinctGames(sessions []model.SessionTelemetry) int {
	seen := make(map[string]struct{}, 2)
	for _, s := range sessions {
		if s.GameName == "" {
			continue
		}
		seen[s.GameName] = struct{}{}
	}
	return len(seen)
}

// distinctDays counts the different calendar days with at least one session.
func distinctDays(sessions []model.SessionTelemetry) int {
	seen := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		seen[s.PlayedAt.Format("2006-01-02")] = struct{}{}
	}
	return len(seen)
}
