package trend

import (
	"github.com/montanaflynn/stats"
)

// regressionSlope fits an ordinary least-squares line over the series
// indexed 0..n-1 and returns its slope. Degenerate series yield zero.
func regressionSlope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	series := make(stats.Series, len(values))
	for i, v := range values {
		series[i] = stats.Coordinate{X: float64(i), Y: v}
	}
	fitted, err := stats.LinearRegression(series)
	if err != nil || len(fitted) < 2 {
		return 0
	}
	first, last := fitted[0], fitted[len(fitted)-1]
	if last.X == first.X {
		return 0
	}
	return (last.Y - first.Y) / (last.X - first.X)
}
