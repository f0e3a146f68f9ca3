package skill

import (
	"math"

	"github.com/lumora/skillsense/internal/domain/model"
)

// Hand-dominance defaults when no usage data exists: a balanced 50/50
// profile with a reasonable bilateral-balance assumption.
const (
	balancedHandShare        = 50.0
	defaultBilateralBalance  = 85.0
	balancedDominanceDefault = 0.0
)

// DeriveHandDominance profiles left/right hand usage. The dominance
// consistency is the deviation of the right-hand share from 50/50.
func DeriveHandDominance(s model.SessionTelemetry) map[string]float64 {
	total := s.HandUsageTotal()
	if total <= 0 {
		return map[string]float64{
			model.DimLeftPercentage:       balancedHandShare,
			model.DimRightPercentage:      balancedHandShare,
			model.DimDominanceConsistency: balancedDominanceDefault,
			model.DimBilateralBalance:     defaultBilateralBalance,
		}
	}
	leftShare := float64(s.LeftHandUsage) / float64(total) * 100
	rightShare := float64(s.RightHandUsage) / float64(total) * 100
	return map[string]float64{
		model.DimLeftPercentage:       leftShare,
		model.DimRightPercentage:      rightShare,
		model.DimDominanceConsistency: math.Abs(balancedHandShare - rightShare),
		model.DimBilateralBalance:     100 - math.Abs(float64(s.LeftHandUsage-s.RightHandUsage))/float64(total)*100,
	}
}
