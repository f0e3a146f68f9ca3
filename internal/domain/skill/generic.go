package skill

import (
	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/telemetry"
)

// genericStrategy is the fallback derivation for unrecognized games. It only
// uses fields every game reports.
type genericStrategy struct{}

func (genericStrategy) DeriveMotor(s model.SessionTelemetry, n telemetry.Normalized) (map[string]float64, float64) {
	acc := n.Accuracy
	return map[string]float64{
		model.DimHandEyeCoordination: acc,
		model.DimFineMotorControl:    acc * 0.9,
		model.DimMovementPrecision:   acc,
		model.DimBilateralCoord:      defaultBilateralTracing,
		model.DimMotorControlOverall: capAt(float64(s.Score)/levelOrOne(s)*0.5, maxDimensionScore),
	}, 0
}
