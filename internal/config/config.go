// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory analysis queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// LookbackDays bounds how far back session history feeds trend
	// summaries.
	LookbackDays int `koanf:"lookback_days"`

	// TrendFreshnessHours controls how long a stored trend summary is
	// served before being recomputed.
	TrendFreshnessHours int `koanf:"trend_freshness_hours"`

	// HistoryDaysDefault is the default window for session history queries.
	HistoryDaysDefault int `koanf:"history_days_default"`

	// MaxRecommendations caps per-session recommendation lists.
	MaxRecommendations int `koanf:"max_recommendations"`

	// MaxTrendRecommendations caps long-term recommendation lists.
	MaxTrendRecommendations int `koanf:"max_trend_recommendations"`

	// MotorWeights maps motor dimension names to their scoring weights.
	// Empty means the built-in table.
	MotorWeights map[string]float64 `koanf:"motor_weights"`

	// CognitiveWeights maps cognitive dimension names to their scoring
	// weights. Empty means the built-in table.
	CognitiveWeights map[string]float64 `koanf:"cognitive_weights"`

	// MotorThresholds are the motor classification cut points.
	MotorThresholds Thresholds `koanf:"motor_thresholds"`

	// CognitiveThresholds are the cognitive classification cut points.
	CognitiveThresholds Thresholds `koanf:"cognitive_thresholds"`
}

// Thresholds are ordered cut points mapping a composite score to a
// qualitative level. Excellent >= Good >= Developing must hold.
type Thresholds struct {
	Excellent  float64 `koanf:"excellent"`
	Good       float64 `koanf:"good"`
	Developing float64 `koanf:"developing"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9090",
		QueueSize:               10_000,
		WorkerCount:             runtime.NumCPU() * 4,
		LookbackDays:            30,
		TrendFreshnessHours:     24,
		HistoryDaysDefault:      30,
		MaxRecommendations:      5,
		MaxTrendRecommendations: 6,
		MotorThresholds:         Thresholds{Excellent: 85, Good: 70, Developing: 50},
		CognitiveThresholds:     Thresholds{Excellent: 90, Good: 75, Developing: 55},
	}
}
