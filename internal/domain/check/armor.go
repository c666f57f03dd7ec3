package check

import "github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"

// ArmorClass is an open armor class computation. Hooks append their
// contributions on top of the base before Value reads it out.
type ArmorClass struct {
	Base      int
	Modifiers *shared.ModifierSet
}

// NewArmorClass creates an armor class computation from a base value
func NewArmorClass(base int) *ArmorClass {
	return &ArmorClass{
		Base:      base,
		Modifiers: shared.NewModifierSet(),
	}
}

// Value is the base plus every contribution
func (a *ArmorClass) Value() int {
	return a.Base + a.Modifiers.Total()
}
