package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SKILLSENSE_CONFIG is set
//  3. env (prefix SKILLSENSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SKILLSENSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SKILLSENSE_ADDR, SKILLSENSE_QUEUE_SIZE, ...
	// Map env keys like SKILLSENSE_QUEUE_SIZE -> queue_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SKILLSENSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "skillsense_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.LookbackDays <= 0 {
		return nil, fmt.Errorf("%w: lookback_days must be positive", ErrInvalidConfig)
	}
	if cfg.TrendFreshnessHours < 0 {
		return nil, fmt.Errorf("%w: trend_freshness_hours must not be negative", ErrInvalidConfig)
	}
	for name, t := range map[string]Thresholds{
		"motor_thresholds":     cfg.MotorThresholds,
		"cognitive_thresholds": cfg.CognitiveThresholds,
	} {
		if t.Excellent < t.Good || t.Good < t.Developing {
			return nil, fmt.Errorf("%w: %s must be ordered excellent >= good >= developing", ErrInvalidConfig, name)
		}
	}
	return &cfg, nil
}
