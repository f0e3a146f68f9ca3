package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/lumora/skillsense/internal/adapters/repository"
	"github.com/lumora/skillsense/internal/domain/model"
)

func TestSessionStore(t *testing.T) {
	Convey("Given an empty in-memory store", t, func() {
		var seq int
		store := repository.NewMemoryStore(repository.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}))
		ctx := context.Background()

		Convey("When a session without an ID is appended", func() {
			stored, err := store.AppendSession(ctx, model.SessionTelemetry{UserID: "u1"})

			Convey("Then an ID is minted and the record is retrievable", func() {
				So(err, ShouldBeNil)
				So(stored.SessionID, ShouldEqual, "id-1")

				got, err := store.GetSession(ctx, "id-1")
				So(err, ShouldBeNil)
				So(got.UserID, ShouldEqual, "u1")
			})

			Convey("Then a zero play time is filled in", func() {
				So(stored.PlayedAt.IsZero(), ShouldBeFalse)
			})
		})

		Convey("When a session arrives with its own ID", func() {
			stored, err := store.AppendSession(ctx, model.SessionTelemetry{
				SessionID: "client-id",
				UserID:    "u1",
			})

			So(err, ShouldBeNil)
			So(stored.SessionID, ShouldEqual, "client-id")
		})

		Convey("When an unknown session is requested", func() {
			_, err := store.GetSession(ctx, "nope")
			So(err, ShouldEqual, repository.ErrSessionNotFound)
		})

		Convey("When sessions are appended out of play order", func() {
			base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
			for _, offset := range []int{2, 0, 1} {
				_, err := store.AppendSession(ctx, model.SessionTelemetry{
					UserID:   "u1",
					PlayedAt: base.AddDate(0, 0, offset),
				})
				So(err, ShouldBeNil)
			}

			Convey("Then listing returns them oldest first", func() {
				list, err := store.ListSessions(ctx, "u1", time.Time{})
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 3)
				So(list[0].PlayedAt, ShouldEqual, base)
				So(list[2].PlayedAt, ShouldEqual, base.AddDate(0, 0, 2))
			})

			Convey("Then the since filter drops older sessions", func() {
				list, err := store.ListSessions(ctx, "u1", base.AddDate(0, 0, 1))
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				So(list[0].PlayedAt, ShouldEqual, base.AddDate(0, 0, 1))
			})

			Convey("Then other users see nothing", func() {
				list, err := store.ListSessions(ctx, "u2", time.Time{})
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})

			Convey("Then the session count covers all users", func() {
				So(store.CountSessions(ctx), ShouldEqual, 3)
			})
		})
	})
}

func TestInsightStore(t *testing.T) {
	Convey("Given an empty in-memory store", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()

		Convey("When no insight exists for a user", func() {
			_, err := store.LatestInsight(ctx, "u1")
			So(err, ShouldEqual, repository.ErrInsightNotFound)

			_, err = store.LatestTrend(ctx, "u1")
			So(err, ShouldEqual, repository.ErrTrendNotFound)
		})

		Convey("When insight bundles are appended in order", func() {
			for i := 1; i <= 2; i++ {
				err := store.AppendInsight(ctx,
					model.InsightBundle{ID: fmt.Sprintf("b-%d", i), UserID: "u1"},
					model.ProgressSnapshot{UserID: "u1"},
				)
				So(err, ShouldBeNil)
			}

			Convey("Then the latest bundle wins", func() {
				got, err := store.LatestInsight(ctx, "u1")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, "b-2")
			})

			Convey("Then the insight count reflects every append", func() {
				So(store.CountInsights(ctx), ShouldEqual, 2)
			})
		})

		Convey("When trend summaries are appended in order", func() {
			for i := 1; i <= 3; i++ {
				err := store.AppendTrend(ctx, model.TrendSummary{
					ID:     fmt.Sprintf("t-%d", i),
					UserID: "u1",
				})
				So(err, ShouldBeNil)
			}

			got, err := store.LatestTrend(ctx, "u1")
			So(err, ShouldBeNil)
			So(got.ID, ShouldEqual, "t-3")
			So(store.CountTrends(ctx), ShouldEqual, 3)
		})
	})
}
