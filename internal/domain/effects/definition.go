package effects

import "github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"

// Kind classifies an effect as helpful or harmful
type Kind string

const (
	KindBuff   Kind = "buff"
	KindDebuff Kind = "debuff"
)

// DurationKind is the duration template of an effect definition
type DurationKind string

const (
	DurationInstant     DurationKind = "instant"
	DurationTemporary   DurationKind = "temporary"
	DurationPermanent   DurationKind = "permanent"
	DurationConditional DurationKind = "conditional"
)

// Duration describes how long an effect instance lives. Temporary effects
// count matching turn boundaries; conditional effects live until removed
// by whatever owns the condition.
type Duration struct {
	Kind     DurationKind        `json:"kind"`
	Turns    int                 `json:"turns,omitempty"`
	Boundary shared.TurnBoundary `json:"boundary,omitempty"`
}

// Instant is a duration that applies and unapplies immediately
func Instant() Duration {
	return Duration{Kind: DurationInstant}
}

// Temporary is a duration of the given number of matching turn boundaries
func Temporary(turns int, boundary shared.TurnBoundary) Duration {
	return Duration{Kind: DurationTemporary, Turns: turns, Boundary: boundary}
}

// Permanent is a duration that lives until explicitly removed
func Permanent() Duration {
	return Duration{Kind: DurationPermanent}
}

// Conditional is a duration owned by an external condition
func Conditional() Duration {
	return Duration{Kind: DurationConditional}
}

// Definition is the immutable description of an effect. The registry owns
// definitions; instances reference them by id.
type Definition struct {
	ID          string
	Kind        Kind
	Description string
	Duration    Duration

	// Replaces names an effect id removed before this one is applied
	Replaces string

	Hooks Hooks
}
