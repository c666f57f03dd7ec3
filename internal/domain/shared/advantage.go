package shared

// AdvantageType marks an entry as advantage or disadvantage
type AdvantageType string

const (
	Advantage    AdvantageType = "advantage"
	Disadvantage AdvantageType = "disadvantage"
)

// RollMode is the net bias applied when a check is performed
type RollMode string

const (
	RollModeNormal       RollMode = "normal"
	RollModeAdvantage    RollMode = "advantage"
	RollModeDisadvantage RollMode = "disadvantage"
)

// AdvantageEntry is one source-attributed advantage or disadvantage vote
type AdvantageEntry struct {
	Kind   AdvantageType `json:"kind"`
	Source Source        `json:"source"`
}

// AdvantageTracker accumulates advantage/disadvantage votes. Multiple
// sources may coexist; the net mode is the sign of the vote count.
type AdvantageTracker struct {
	entries []AdvantageEntry
}

// NewAdvantageTracker creates an empty tracker
func NewAdvantageTracker() *AdvantageTracker {
	return &AdvantageTracker{}
}

// Add records a vote for the given source
func (t *AdvantageTracker) Add(kind AdvantageType, source Source) {
	t.entries = append(t.entries, AdvantageEntry{Kind: kind, Source: source})
}

// Remove drops every vote recorded under the given source
func (t *AdvantageTracker) Remove(source Source) {
	kept := t.entries[:0]
	for _, entry := range t.entries {
		if entry.Source != source {
			kept = append(kept, entry)
		}
	}
	t.entries = kept
}

// RollMode returns the net bias: advantage if votes are net positive,
// disadvantage if net negative, normal otherwise. A pure function of the
// current entries.
func (t *AdvantageTracker) RollMode() RollMode {
	net := 0
	for _, entry := range t.entries {
		switch entry.Kind {
		case Advantage:
			net++
		case Disadvantage:
			net--
		}
	}

	switch {
	case net > 0:
		return RollModeAdvantage
	case net < 0:
		return RollModeDisadvantage
	default:
		return RollModeNormal
	}
}

// Entries returns the current votes in insertion order
func (t *AdvantageTracker) Entries() []AdvantageEntry {
	out := make([]AdvantageEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Clone returns an independent copy
func (t *AdvantageTracker) Clone() *AdvantageTracker {
	clone := NewAdvantageTracker()
	clone.entries = make([]AdvantageEntry, len(t.entries))
	copy(clone.entries, t.entries)
	return clone
}
