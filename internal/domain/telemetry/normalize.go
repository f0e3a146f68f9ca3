// Package telemetry normalizes raw session telemetry before derivation.
//
// The normalizer is a pure function over its input: malformed raw payloads
// are logged and replaced with an empty mapping, missing counters fall back
// to documented estimates, and a zero duration is substituted with a fixed
// fallback so no downstream computation can divide by zero.
package telemetry

import (
	"context"
	"encoding/json"

	"github.com/lumora/skillsense/internal/domain/model"
	"github.com/lumora/skillsense/pkg/logger"
)

// Normalization policy constants.
const (
	fallbackDurationSeconds = 60.0 // substituted when the session duration is absent or zero
	estimateAccuracyCap     = 95.0 // ceiling for the successful-attempts-only estimate
	estimatePerSuccess      = 20.0 // accuracy credited per successful attempt in the estimate
	secondsPerMinute        = 60.0
)

// TrackPoint is one time-stamped hand position from the raw payload.
type TrackPoint struct {
	X         float64
	Y         float64
	Timestamp float64
}

// Normalized carries the decoded raw payload and the base measures every
// derivation strategy consumes.
type Normalized struct {
	Raw             map[string]any
	Accuracy        float64 // base accuracy percentage in [0,100]
	DurationMinutes float64 // never zero; fallback applied
	Family          GameFamily
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithLogger sets a custom logger for the normalizer.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// Normalizer validates and defaults raw per-session fields.
type Normalizer struct {
	logger logger.Logger
}

// NewNormalizer creates a Normalizer with configuration options.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		logger: logger.Get().Named("telemetry"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize produces the decoded payload, base accuracy and duration for one
// session. It never fails; every malformed or missing field has an explicit
// default.
func (n *Normalizer) Normalize(ctx context.Context, s model.SessionTelemetry) Normalized {
	return Normalized{
		Raw:             n.decodeRaw(ctx, s),
		Accuracy:        BaseAccuracy(s),
		DurationMinutes: DurationMinutes(s),
		Family:          DetectFamily(s.GameName),
	}
}

// BaseAccuracy computes the base accuracy percentage. When only successful
// attempts are known the total is estimated, capped at 95; when nothing is
// known the accuracy is 0.
func BaseAccuracy(s model.SessionTelemetry) float64 {
	switch {
	case s.TotalAttempts > 0:
		return float64(s.SuccessfulAttempts) / float64(s.TotalAttempts) * 100
	case s.SuccessfulAttempts > 0:
		estimate := float64(s.SuccessfulAttempts) * estimatePerSuccess
		if estimate > estimateAccuracyCap {
			return estimateAccuracyCap
		}
		return estimate
	default:
		return 0
	}
}

// DurationMinutes converts the session duration to minutes, substituting a
// fixed 60-second fallback for absent or zero durations.
func DurationMinutes(s model.SessionTelemetry) float64 {
	seconds := s.DurationSeconds
	if seconds <= 0 {
		seconds = fallbackDurationSeconds
	}
	return seconds / secondsPerMinute
}

// decodeRaw parses the raw JSON payload, falling back to an empty mapping on
// malformed input. A decode failure discards the payload only; the session
// still analyzes on its counters.
func (n *Normalizer) decodeRaw(ctx context.Context, s model.SessionTelemetry) map[string]any {
	if s.RawData == "" {
		return map[string]any{}
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(s.RawData), &raw); err != nil {
		n.logger.Warn(ctx, "discarding malformed raw session payload",
			logger.String("sessionID", s.SessionID),
			logger.Error(err),
		)
		return map[string]any{}
	}
	if raw == nil {
		return map[string]any{}
	}
	return raw
}

// Float reads a numeric payload field. The second return reports presence.
func (n Normalized) Float(key string) (float64, bool) {
	v, ok := n.Raw[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Floats reads a numeric list field, skipping non-numeric entries.
func (n Normalized) Floats(key string) []float64 {
	v, ok := n.Raw[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if f, ok := item.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// Points reads a time-stamped position sequence, skipping malformed samples.
func (n Normalized) Points(key string) []TrackPoint {
	v, ok := n.Raw[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]TrackPoint, 0, len(items))
	for _, item := range items {
		sample, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := TrackPoint{}
		if x, ok := sample["x"].(float64); ok {
			p.X = x
		}
		if y, ok := sample["y"].(float64); ok {
			p.Y = y
		}
		if ts, ok := sample["timestamp"].(float64); ok {
			p.Timestamp = ts
		}
		out = append(out, p)
	}
	return out
}
