package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/lumora/skillsense/internal/adapters/repository"
	service "github.com/lumora/skillsense/internal/app"
	"github.com/lumora/skillsense/internal/domain/model"
)

func startService(opts ...service.Option) (*service.Service, func()) {
	base := []service.Option{
		service.WithWorkerCount(1),
		service.WithQueueSize(8),
		service.WithTrendFreshness(0),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc, svc.Stop
}

func TestRecordSession(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, stop := startService()
		defer stop()
		ctx := context.Background()

		Convey("When a session without an ID is recorded", func() {
			stored, err := svc.RecordSession(ctx, model.SessionTelemetry{
				UserID:   "u1",
				GameName: "Bubble Pop",
			})

			Convey("Then an ID is minted and the session is retrievable", func() {
				So(err, ShouldBeNil)
				So(stored.SessionID, ShouldNotBeEmpty)

				history, err := svc.SessionHistory(ctx, "u1", 7)
				So(err, ShouldBeNil)
				So(history, ShouldHaveLength, 1)
				So(history[0].SessionID, ShouldEqual, stored.SessionID)
			})
		})
	})
}

func TestAnalyzeSession(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, stop := startService()
		defer stop()
		ctx := context.Background()

		s := model.SessionTelemetry{
			SessionID:          "sess-1",
			UserID:             "u1",
			GameName:           "Follow the Dot",
			TotalAttempts:      10,
			SuccessfulAttempts: 9,
			LevelReached:       3,
			Score:              450,
			DurationSeconds:    240,
		}

		Convey("When a session is analyzed synchronously", func() {
			bundle, err := svc.AnalyzeSession(ctx, s)

			Convey("Then the bundle is persisted as the user's latest", func() {
				So(err, ShouldBeNil)
				So(bundle.UserID, ShouldEqual, "u1")
				So(bundle.MotorScore, ShouldBeGreaterThan, 0)

				latest, err := svc.LatestInsight(ctx, "u1")
				So(err, ShouldBeNil)
				So(latest.ID, ShouldEqual, bundle.ID)
			})
		})

		Convey("When no analysis exists for a user", func() {
			_, err := svc.LatestInsight(ctx, "nobody")
			So(err, ShouldEqual, repository.ErrInsightNotFound)
		})
	})
}

func TestSessionHistoryWindow(t *testing.T) {
	Convey("Given a service with recorded sessions of different ages", t, func() {
		store := repository.NewMemoryStore()
		svc, stop := startService(service.WithStore(store))
		defer stop()
		ctx := context.Background()

		now := time.Now()
		for _, age := range []int{1, 10, 45} {
			_, err := store.AppendSession(ctx, model.SessionTelemetry{
				UserID:   "u1",
				PlayedAt: now.AddDate(0, 0, -age),
			})
			So(err, ShouldBeNil)
		}

		Convey("When a 7-day window is requested", func() {
			history, err := svc.SessionHistory(ctx, "u1", 7)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 1)
		})

		Convey("When a non-positive window falls back to the default", func() {
			history, err := svc.SessionHistory(ctx, "u1", 0)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 2)
		})
	})
}

func TestProgressTrend(t *testing.T) {
	Convey("Given a service that always recomputes trends", t, func() {
		store := repository.NewMemoryStore()
		svc, stop := startService(service.WithStore(store))
		defer stop()
		ctx := context.Background()

		now := time.Now()
		for i := 0; i < 4; i++ {
			_, err := store.AppendSession(ctx, model.SessionTelemetry{
				UserID:             "u1",
				GameName:           "Bubble Pop",
				Score:              100 + i*10,
				TotalAttempts:      10,
				SuccessfulAttempts: 5 + i,
				DurationSeconds:    200,
				PlayedAt:           now.AddDate(0, 0, i-4),
			})
			So(err, ShouldBeNil)
		}

		Convey("When the trend is requested", func() {
			summary, err := svc.ProgressTrend(ctx, "u1")

			Convey("Then the lookback window feeds the summary", func() {
				So(err, ShouldBeNil)
				So(summary.UserID, ShouldEqual, "u1")
				So(summary.SessionCount, ShouldEqual, 4)
				So(summary.ScoreSlope, ShouldBeGreaterThan, 0)
			})

			Convey("Then each request regenerates a fresh summary", func() {
				So(err, ShouldBeNil)
				again, err := svc.ProgressTrend(ctx, "u1")
				So(err, ShouldBeNil)
				So(again.ID, ShouldNotEqual, summary.ID)
			})
		})
	})

	Convey("Given a service that serves fresh stored summaries", t, func() {
		store := repository.NewMemoryStore()
		svc, stop := startService(
			service.WithStore(store),
			service.WithTrendFreshness(time.Hour),
		)
		defer stop()
		ctx := context.Background()

		first, err := svc.ProgressTrend(ctx, "u1")
		So(err, ShouldBeNil)

		Convey("Then a second request within the freshness window is cached", func() {
			second, err := svc.ProgressTrend(ctx, "u1")
			So(err, ShouldBeNil)
			So(second.ID, ShouldEqual, first.ID)
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, stop := startService()
		defer stop()

		stats := svc.GetStats()

		So(stats["started"], ShouldBeTrue)
		So(stats["queueLength"], ShouldEqual, 0)
		So(stats["totalSessions"], ShouldEqual, 0)
	})
}
