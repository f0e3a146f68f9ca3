package telemetry

import "strings"

// GameFamily selects the metric-derivation strategy for a session. The
// closed set of families is decided once at the normalization boundary.
type GameFamily string

const (
	// FamilyTracing covers hand-path-following games such as "Follow the Dot".
	FamilyTracing GameFamily = "tracing"
	// FamilyReaction covers timed-target games such as "Bubble Pop".
	FamilyReaction GameFamily = "reaction"
	// FamilyGeneric is the fallback for unrecognized games.
	FamilyGeneric GameFamily = "generic"
)

// DetectFamily maps a free-form game identifier to its family using
// case- and spacing-insensitive substring matching.
func DetectFamily(gameName string) GameFamily {
	name := strings.ToLower(strings.ReplaceAll(gameName, " ", ""))
	switch {
	case strings.Contains(name, "follow"), strings.Contains(name, "trace"), strings.Contains(name, "dot"):
		return FamilyTracing
	case strings.Contains(name, "bubble"), strings.Contains(name, "pop"), strings.Contains(name, "react"):
		return FamilyReaction
	default:
		return FamilyGeneric
	}
}
