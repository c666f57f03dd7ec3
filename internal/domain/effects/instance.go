package effects

import "github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"

// Instance is one live application of an effect definition on an actor
type Instance struct {
	ID           string
	DefinitionID string
	Source       shared.Source
	ApplierID    string

	// Elapsed counts the matching turn boundaries survived so far.
	// Only meaningful for temporary durations.
	Elapsed int

	definition *Definition
}

// NewInstance creates an instance bound to its definition
func NewInstance(id string, def *Definition, source shared.Source, applierID string) *Instance {
	return &Instance{
		ID:           id,
		DefinitionID: def.ID,
		Source:       source,
		ApplierID:    applierID,
		definition:   def,
	}
}

// Definition returns the bound definition
func (i *Instance) Definition() *Definition {
	return i.definition
}

// Rebind attaches a definition after loading an instance from storage
func (i *Instance) Rebind(def *Definition) {
	i.definition = def
	i.DefinitionID = def.ID
}

// expired reports whether a temporary instance has outlived its duration
// at a matching boundary. Checked before Elapsed is incremented, so an
// n-turn effect survives exactly n matching ticks.
func (i *Instance) expired(boundary shared.TurnBoundary) bool {
	d := i.definition.Duration
	if d.Kind != DurationTemporary || d.Boundary != boundary {
		return false
	}
	return i.Elapsed >= d.Turns
}
