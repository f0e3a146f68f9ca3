package skill

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/lumora/skillsense/internal/domain/telemetry"
)

// Smoothness computation constants. The stddev multiplier is an empirically
// chosen tunable, preserved for behavioral compatibility.
const (
	minTrackPoints       = 3
	smoothnessStddevGain = 20.0
)

// movementSmoothness scores movement smoothness from a time-stamped hand
// position sequence. Smoothness is inversely related to the variation of
// point-to-point velocities; pairs with non-positive elapsed time are
// skipped. The second return is false when no velocity can be derived, in
// which case the caller substitutes the neutral default.
func movementSmoothness(points []telemetry.TrackPoint) (float64, bool) {
	if len(points) < minTrackPoints {
		return 0, false
	}
	velocities := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		dt := curr.Timestamp - prev.Timestamp
		if dt <= 0 {
			continue
		}
		dx := curr.X - prev.X
		dy := curr.Y - prev.Y
		velocities = append(velocities, math.Sqrt(dx*dx+dy*dy)/dt)
	}
	if len(velocities) == 0 {
		return 0, false
	}
	sd, err := stats.StandardDeviation(stats.Float64Data(velocities))
	if err != nil {
		return 0, false
	}
	return clamp(100 - sd*smoothnessStddevGain), true
}
