package telemetry_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/internal/domain/telemetry"
)

func TestBaseAccuracy(t *testing.T) {
	Convey("Given sessions with different attempt counters", t, func() {
		Convey("When both counters are present", func() {
			s := model.SessionTelemetry{TotalAttempts: 10, SuccessfulAttempts: 8}
			So(telemetry.BaseAccuracy(s), ShouldEqual, 80)
		})

		Convey("When only successful attempts are known", func() {
			s := model.SessionTelemetry{SuccessfulAttempts: 3}
			So(telemetry.BaseAccuracy(s), ShouldEqual, 60)
		})

		Convey("Then the estimate is capped below a perfect score", func() {
			s := model.SessionTelemetry{SuccessfulAttempts: 50}
			So(telemetry.BaseAccuracy(s), ShouldEqual, 95)
		})

		Convey("When no attempts are recorded", func() {
			So(telemetry.BaseAccuracy(model.SessionTelemetry{}), ShouldEqual, 0)
		})

		Convey("When every attempt failed", func() {
			s := model.SessionTelemetry{TotalAttempts: 5, SuccessfulAttempts: 0}
			So(telemetry.BaseAccuracy(s), ShouldEqual, 0)
		})
	})
}

func TestDurationMinutes(t *testing.T) {
	Convey("Given sessions with and without a recorded duration", t, func() {
		Convey("When the duration is present it converts to minutes", func() {
			s := model.SessionTelemetry{DurationSeconds: 150}
			So(telemetry.DurationMinutes(s), ShouldEqual, 2.5)
		})

		Convey("When the duration is absent the fallback applies", func() {
			So(telemetry.DurationMinutes(model.SessionTelemetry{}), ShouldEqual, 1)
		})

		Convey("When the duration is negative the fallback applies", func() {
			s := model.SessionTelemetry{DurationSeconds: -10}
			So(telemetry.DurationMinutes(s), ShouldEqual, 1)
		})
	})
}

func TestDetectFamily(t *testing.T) {
	Convey("Given a set of game names", t, func() {
		Convey("Then tracing games are recognized", func() {
			So(telemetry.DetectFamily("Follow the Dot"), ShouldEqual, telemetry.FamilyTracing)
			So(telemetry.DetectFamily("shape-tracer"), ShouldEqual, telemetry.FamilyTracing)
		})

		Convey("Then reaction games are recognized", func() {
			So(telemetry.DetectFamily("Bubble Pop"), ShouldEqual, telemetry.FamilyReaction)
			So(telemetry.DetectFamily("QuickReact"), ShouldEqual, telemetry.FamilyReaction)
		})

		Convey("Then everything else falls back to generic", func() {
			So(telemetry.DetectFamily("Memory Match"), ShouldEqual, telemetry.FamilyGeneric)
			So(telemetry.DetectFamily(""), ShouldEqual, telemetry.FamilyGeneric)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given a normalizer", t, func() {
		n := telemetry.NewNormalizer()
		ctx := context.Background()

		Convey("When the raw payload is valid JSON", func() {
			s := model.SessionTelemetry{
				GameName:           "Bubble Pop",
				TotalAttempts:      10,
				SuccessfulAttempts: 8,
				DurationSeconds:    150,
				RawData:            `{"averageReactionTime": 800}`,
			}
			out := n.Normalize(ctx, s)

			So(out.Accuracy, ShouldEqual, 80)
			So(out.DurationMinutes, ShouldEqual, 2.5)
			So(out.Family, ShouldEqual, telemetry.FamilyReaction)

			v, ok := out.Float("averageReactionTime")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 800)
		})

		Convey("When the raw payload is malformed it is discarded, not fatal", func() {
			s := model.SessionTelemetry{
				GameName:           "Bubble Pop",
				TotalAttempts:      10,
				SuccessfulAttempts: 8,
				RawData:            `{"averageReactionTime": `,
			}
			out := n.Normalize(ctx, s)

			So(out.Raw, ShouldBeEmpty)
			So(out.Accuracy, ShouldEqual, 80)
		})

		Convey("When the raw payload is empty", func() {
			out := n.Normalize(ctx, model.SessionTelemetry{})
			So(out.Raw, ShouldBeEmpty)
		})
	})
}

func TestPayloadAccessors(t *testing.T) {
	Convey("Given a normalized payload with mixed content", t, func() {
		n := telemetry.NewNormalizer()
		s := model.SessionTelemetry{
			RawData: `{
				"reactionTimes": [500, "bad", 700],
				"handTrackingData": [
					{"x": 1, "y": 2, "timestamp": 100},
					"garbage",
					{"x": 3, "timestamp": 200}
				]
			}`,
		}
		out := n.Normalize(context.Background(), s)

		Convey("Then numeric lists skip non-numeric entries", func() {
			So(out.Floats("reactionTimes"), ShouldResemble, []float64{500, 700})
		})

		Convey("Then point sequences skip malformed samples", func() {
			points := out.Points("handTrackingData")
			So(points, ShouldHaveLength, 2)
			So(points[0].X, ShouldEqual, 1)
			So(points[0].Timestamp, ShouldEqual, 100)
			So(points[1].Y, ShouldEqual, 0)
		})

		Convey("Then missing keys report absence", func() {
			_, ok := out.Float("missing")
			So(ok, ShouldBeFalse)
			So(out.Floats("missing"), ShouldBeNil)
			So(out.Points("missing"), ShouldBeNil)
		})
	})
}
