package insight

import (
	"github.com/lumora/skillsense/internal/domain/model"
)

// highlightRule thresholds one dimension against a strength floor and an
// improvement ceiling.
type highlightRule struct {
	dim         string
	strengthMin float64
	improveMax  float64
	strength    string
	improvement string
}

var motorHighlightRules = []highlightRule{
	{model.DimHandEyeCoordination, 75, 50, "Excellent hand-eye coordination", "Hand-eye coordination needs more practice"},
	{model.DimMovementSmoothness, 80, 60, "Very smooth and controlled movements", "Focus on smoother, more controlled movements"},
	{model.DimFineMotorControl, 75, 55, "Good fine motor precision", "Fine motor skills need development"},
	{model.DimBilateralCoord, 80, 60, "Great bilateral hand coordination", "Work on using both hands equally"},
}

var cognitiveHighlightRules = []highlightRule{
	{model.DimSustainedAttention, 80, 60, "Excellent attention and focus", "Attention span can be improved with practice"},
	{model.DimWorkingMemory, 75, 55, "Strong working memory skills", "Memory exercises would be beneficial"},
	{model.DimExecutiveFunction, 75, 55, "Good decision-making and error management", "Work on planning and error correction"},
	{model.DimProcessingSpeed, 70, 50, "Good processing speed", "Processing speed can be improved"},
}

// Engagement and overall thresholds for the highlight pass.
const (
	engagementStrengthFloor = 80.0
	engagementImproveCeil   = 50.0
	overallStrengthFloor    = 80.0
	overallBalancedFloor    = 65.0
)

// identifyHighlights thresholds each dimension independently to produce the
// capped strengths and improvement-area lists. When nothing fires, a
// guaranteed fallback pair keeps both lists non-empty.
func identifyHighlights(dm model.DerivedMetrics, cs model.CompositeScore) (strengths, improvements []string) {
	apply := func(dims map[string]float64, rules []highlightRule) {
		for _, rule := range rules {
			// Absent dimensions count as zero, so a strategy that never
			// measures a dimension surfaces it as an improvement area.
			value := dims[rule.dim]
			switch {
			case value > rule.strengthMin:
				strengths = append(strengths, rule.strength)
			case value < rule.improveMax:
				improvements = append(improvements, rule.improvement)
			}
		}
	}
	apply(dm.Motor, motorHighlightRules)
	apply(dm.Cognitive, cognitiveHighlightRules)

	if overall := dm.Engagement[model.DimEngagementOverall]; overall > engagementStrengthFloor {
		strengths = append(strengths, "High engagement and motivation")
	} else if overall < engagementImproveCeil {
		improvements = append(improvements, "Try shorter, more frequent practice sessions")
	}

	if cs.Motor > overallStrengthFloor && cs.Cognitive > overallStrengthFloor {
		strengths = append(strengths, "Outstanding overall development!")
	} else if cs.Motor > overallBalancedFloor && cs.Cognitive > overallBalancedFloor {
		strengths = append(strengths, "Good balanced skill development")
	}

	if len(strengths) == 0 && len(improvements) == 0 {
		strengths = append(strengths, "Completed the activity successfully")
		improvements = append(improvements, "Continue practicing to see improvement")
	}

	return capStrings(strengths, maxHighlights), capStrings(improvements, maxHighlights)
}

func capStrings(list []string, limit int) []string {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
