package config_test

import (
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/lumora/skillsense/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.LookbackDays, convey.ShouldEqual, 30)
			convey.So(cfg.TrendFreshnessHours, convey.ShouldEqual, 24)
			convey.So(cfg.HistoryDaysDefault, convey.ShouldEqual, 30)
			convey.So(cfg.MaxRecommendations, convey.ShouldEqual, 5)
			convey.So(cfg.MaxTrendRecommendations, convey.ShouldEqual, 6)
			convey.So(cfg.MotorThresholds, convey.ShouldResemble, config.Thresholds{Excellent: 85, Good: 70, Developing: 50})
			convey.So(cfg.CognitiveThresholds, convey.ShouldResemble, config.Thresholds{Excellent: 90, Good: 75, Developing: 55})
		})
	})
}
