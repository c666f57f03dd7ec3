package shared

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ModifierSet accumulates source-attributed numeric adjustments.
// At most one live entry per Source: adding under an existing Source
// replaces its value.
type ModifierSet struct {
	modifiers map[Source]int
}

// NewModifierSet creates an empty ModifierSet
func NewModifierSet() *ModifierSet {
	return &ModifierSet{
		modifiers: make(map[Source]int),
	}
}

// AddModifier sets the contribution for a source, replacing any existing entry
func (m *ModifierSet) AddModifier(source Source, value int) {
	m.modifiers[source] = value
}

// RemoveModifier deletes the contribution for a source
func (m *ModifierSet) RemoveModifier(source Source) {
	delete(m.modifiers, source)
}

// Get returns the contribution for a source
func (m *ModifierSet) Get(source Source) (int, bool) {
	value, ok := m.modifiers[source]
	return value, ok
}

// Total sums every live contribution
func (m *ModifierSet) Total() int {
	total := 0
	for _, value := range m.modifiers {
		total += value
	}
	return total
}

// Scale multiplies every contribution by factor, rounding half away from
// zero. Only used for ability-derived contributions.
func (m *ModifierSet) Scale(factor float64) {
	for source, value := range m.modifiers {
		m.modifiers[source] = int(math.Round(float64(value) * factor))
	}
}

// Merge adds every contribution from other into this set, summing values
// that share a source
func (m *ModifierSet) Merge(other *ModifierSet) {
	if other == nil {
		return
	}
	for source, value := range other.modifiers {
		m.modifiers[source] += value
	}
}

// Clone returns an independent copy
func (m *ModifierSet) Clone() *ModifierSet {
	clone := NewModifierSet()
	for source, value := range m.modifiers {
		clone.modifiers[source] = value
	}
	return clone
}

// IsEmpty reports whether the set has no contributions
func (m *ModifierSet) IsEmpty() bool {
	return len(m.modifiers) == 0
}

// Len returns the number of live contributions
func (m *ModifierSet) Len() int {
	return len(m.modifiers)
}

// Entries returns the contributions sorted by source for stable display
func (m *ModifierSet) Entries() []ModifierEntry {
	entries := make([]ModifierEntry, 0, len(m.modifiers))
	for source, value := range m.modifiers {
		entries = append(entries, ModifierEntry{Source: source, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Source.String() < entries[j].Source.String()
	})
	return entries
}

// ModifierEntry is one source-attributed contribution
type ModifierEntry struct {
	Source Source `json:"source"`
	Value  int    `json:"value"`
}

func (m *ModifierSet) String() string {
	var b strings.Builder
	for _, entry := range m.Entries() {
		if entry.Value == 0 {
			continue
		}
		sign := "+"
		if entry.Value < 0 {
			sign = "-"
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s %d (%s)", sign, abs(entry.Value), entry.Source)
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
