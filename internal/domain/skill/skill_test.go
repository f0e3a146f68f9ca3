package skill_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/skill"
	"github.com/lumora/skillsense/internal/domain/telemetry"
)

func derive(s model.SessionTelemetry) model.DerivedMetrics {
	ctx := context.Background()
	n := telemetry.NewNormalizer().Normalize(ctx, s)
	return skill.NewAnalyzer().Derive(ctx, s, n)
}

func TestReactionDerivation(t *testing.T) {
	Convey("Given a reaction-game session with a reported mean reaction time", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Bubble Pop",
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			LevelReached:       2,
			DurationSeconds:    180,
			RawData:            `{"averageReactionTime": 800}`,
		}
		dm := derive(s)

		Convey("Then the reaction score follows the linear mapping", func() {
			So(dm.Motor[model.DimReactionTimeScore], ShouldAlmostEqual, (1500.0-800.0)/13.0, 0.001)
			So(dm.AverageReactionMS, ShouldEqual, 800)
		})

		Convey("Then precision tracks accuracy", func() {
			So(dm.Motor[model.DimMovementPrecision], ShouldEqual, 80)
		})

		Convey("Then speed adaptation blends accuracy and level", func() {
			So(dm.Motor[model.DimSpeedAdaptation], ShouldAlmostEqual, 80*0.7+40*0.3, 0.001)
		})

		Convey("Then bilateral coordination uses the reaction default without hand data", func() {
			So(dm.Motor[model.DimBilateralCoord], ShouldEqual, 70)
		})
	})

	Convey("Given a reaction-game session with a sample list", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Bubble Pop",
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			DurationSeconds:    180,
			RawData:            `{"reactionTimes": [600, 600, 600]}`,
		}
		dm := derive(s)

		Convey("Then the mean drives the score and zero spread is perfectly consistent", func() {
			So(dm.Motor[model.DimReactionTimeScore], ShouldAlmostEqual, (1500.0-600.0)/13.0, 0.001)
			So(dm.Motor[model.DimReactionConsistency], ShouldEqual, 100)
			So(dm.AverageReactionMS, ShouldEqual, 600)
		})
	})

	Convey("Given a reaction-game session with no timing data at all", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Bubble Pop",
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			DurationSeconds:    120,
		}
		dm := derive(s)

		Convey("Then the rate estimate applies and no reaction time is reported", func() {
			So(dm.Motor[model.DimReactionTimeScore], ShouldAlmostEqual, 8.0, 0.001) // 4/min * 2
			So(dm.Motor[model.DimReactionConsistency], ShouldEqual, 64)
			So(dm.AverageReactionMS, ShouldEqual, 0)
		})
	})
}

func TestTracingSmoothness(t *testing.T) {
	Convey("Given a tracing-game session with a steady hand path", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Follow the Dot",
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			DurationSeconds:    180,
			RawData: `{"handTrackingData": [
				{"x": 0, "y": 0, "timestamp": 0},
				{"x": 10, "y": 0, "timestamp": 100},
				{"x": 20, "y": 0, "timestamp": 200},
				{"x": 30, "y": 0, "timestamp": 300}
			]}`,
		}
		dm := derive(s)

		Convey("Then constant velocity scores perfectly smooth", func() {
			So(dm.Motor[model.DimMovementSmoothness], ShouldEqual, 100)
		})

		Convey("Then fine motor control blends accuracy and smoothness", func() {
			So(dm.Motor[model.DimFineMotorControl], ShouldAlmostEqual, 80*0.7+100*0.3, 0.001)
		})
	})

	Convey("Given a hand path where no elapsed time can be derived", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Follow the Dot",
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			RawData: `{"handTrackingData": [
				{"x": 0, "y": 0, "timestamp": 100},
				{"x": 10, "y": 0, "timestamp": 100},
				{"x": 20, "y": 0, "timestamp": 100}
			]}`,
		}
		dm := derive(s)

		Convey("Then the neutral smoothness default is substituted", func() {
			So(dm.Motor[model.DimMovementSmoothness], ShouldEqual, 50)
		})
	})

	Convey("Given a tracing-game session with an explicit smoothness value", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Follow the Dot",
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			RawData:            `{"smoothness": 87.5}`,
		}
		dm := derive(s)

		Convey("Then the explicit value wins", func() {
			So(dm.Motor[model.DimMovementSmoothness], ShouldEqual, 87.5)
		})
	})

	Convey("Given a tracing-game session without any tracking data", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Follow the Dot",
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			LevelReached:       3,
		}
		dm := derive(s)

		Convey("Then smoothness is estimated from accuracy and level", func() {
			So(dm.Motor[model.DimMovementSmoothness], ShouldAlmostEqual, 80*0.8+12, 0.001)
		})
	})
}

func TestGenericDerivation(t *testing.T) {
	Convey("Given a session from an unrecognized game", t, func() {
		s := model.SessionTelemetry{
			GameName:           "Memory Match",
			TotalAttempts:      10,
			SuccessfulAttempts: 6,
			LevelReached:       4,
			Score:              200,
		}
		dm := derive(s)

		Convey("Then only universally available dimensions are produced", func() {
			So(dm.Motor[model.DimHandEyeCoordination], ShouldEqual, 60)
			So(dm.Motor[model.DimFineMotorControl], ShouldEqual, 54)
			So(dm.Motor[model.DimBilateralCoord], ShouldEqual, 75)
			So(dm.Motor[model.DimMotorControlOverall], ShouldEqual, 25) // 200/4*0.5
			So(dm.Motor, ShouldNotContainKey, model.DimMovementSmoothness)
		})
	})
}

func TestEngagementBands(t *testing.T) {
	Convey("Given the duration quality band function", t, func() {
		s := model.SessionTelemetry{LevelReached: 1}

		cases := []struct {
			minutes float64
			want    float64
		}{
			{5, 100},
			{2.5, 80},
			{1.5, 60},
			{0.5, 30},
			{0, 30},
			{10, 90},
			{20, 60}, // penalty floors at 60
		}
		for _, tc := range cases {
			got := skill.DeriveEngagement(s, tc.minutes)[model.DimDurationQuality]
			So(got, ShouldEqual, tc.want)
		}
	})

	Convey("Given a productive mid-length session", t, func() {
		s := model.SessionTelemetry{LevelReached: 2, Score: 100}
		m := skill.DeriveEngagement(s, 4)

		Convey("Then the overall engagement is the fixed weighted blend", func() {
			So(m[model.DimCompletionEngagement], ShouldEqual, 50)
			So(m[model.DimScoreProgression], ShouldEqual, 50) // 25/min * 2
			So(m[model.DimEngagementOverall], ShouldAlmostEqual, 100*0.4+50*0.35+50*0.25, 0.001)
		})
	})
}

func TestCognitiveDerivation(t *testing.T) {
	Convey("Given a four-minute session with strong accuracy", t, func() {
		s := model.SessionTelemetry{
			TotalAttempts:      10,
			SuccessfulAttempts: 8,
			LevelReached:       3,
			DurationSeconds:    240,
		}
		m := skill.DeriveCognitive(s, 4)

		So(m[model.DimSustainedAttention], ShouldAlmostEqual, 66, 0.001) // 50 + 16 bonus
		So(m[model.DimWorkingMemory], ShouldEqual, 54)
		So(m[model.DimExecutiveFunction], ShouldAlmostEqual, 76, 0.001)
		So(m[model.DimProcessingSpeed], ShouldAlmostEqual, 2.0/15.0*100, 0.001)
		So(m[model.DimCognitiveFlexibility], ShouldEqual, 50)
		So(m[model.DimDecisionMaking], ShouldAlmostEqual, 0.8*70+10.0/240.0*30, 0.001)
	})

	Convey("Given a session with no recorded duration or attempts", t, func() {
		m := skill.DeriveCognitive(model.SessionTelemetry{}, 0)

		Convey("Then every dimension falls back to its documented default", func() {
			So(m[model.DimSustainedAttention], ShouldEqual, 40)
			So(m[model.DimExecutiveFunction], ShouldEqual, 70)
			So(m[model.DimProcessingSpeed], ShouldEqual, 50)
			So(m[model.DimCognitiveFlexibility], ShouldEqual, 30)
			So(m[model.DimDecisionMaking], ShouldEqual, 60)
		})
	})
}

func TestHandDominance(t *testing.T) {
	Convey("Given a session without hand-usage data", t, func() {
		m := skill.DeriveHandDominance(model.SessionTelemetry{})

		Convey("Then the balanced default profile applies", func() {
			So(m[model.DimLeftPercentage], ShouldEqual, 50)
			So(m[model.DimRightPercentage], ShouldEqual, 50)
			So(m[model.DimDominanceConsistency], ShouldEqual, 0)
			So(m[model.DimBilateralBalance], ShouldEqual, 85)
		})
	})

	Convey("Given a right-dominant session", t, func() {
		s := model.SessionTelemetry{LeftHandUsage: 30, RightHandUsage: 70}
		m := skill.DeriveHandDominance(s)

		So(m[model.DimLeftPercentage], ShouldEqual, 30)
		So(m[model.DimRightPercentage], ShouldEqual, 70)
		So(m[model.DimDominanceConsistency], ShouldEqual, 20)
		So(m[model.DimBilateralBalance], ShouldEqual, 60)
	})
}
