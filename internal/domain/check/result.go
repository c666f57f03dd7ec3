package check

import (
	"fmt"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
)

// Result is the immutable outcome of a resolved check
type Result struct {
	Kind      Kind
	Skill     shared.Skill
	Ability   shared.Ability
	Rolls     []int
	Selected  int
	Mode      shared.RollMode
	Breakdown *shared.ModifierSet
}

// ModifierTotal sums the breakdown
func (r *Result) ModifierTotal() int {
	return r.Breakdown.Total()
}

// Total is the selected die plus the modifier total. A negative modifier
// total never pushes the total below the selected die.
func (r *Result) Total() int {
	mods := r.Breakdown.Total()
	if mods < 0 {
		mods = 0
	}
	return r.Selected + mods
}

// IsCrit reports a raw selected die of 20, regardless of modifiers
func (r *Result) IsCrit() bool {
	return r.Selected == 20
}

// IsCritFail reports a raw selected die of 1, regardless of modifiers
func (r *Result) IsCritFail() bool {
	return r.Selected == 1
}

// IsSuccess resolves the check against a target number. A crit-fail always
// fails. A crit always succeeds, except attack rolls against armor class
// which still require the total to reach the target.
func (r *Result) IsSuccess(target int) bool {
	if r.IsCritFail() {
		return false
	}
	if r.IsCrit() && r.Kind != KindAttack {
		return true
	}
	return r.Total() >= target
}

func (r *Result) String() string {
	return fmt.Sprintf("%s check: rolled %v (%s), selected %d, total %d",
		r.Kind, r.Rolls, r.Mode, r.Selected, r.Total())
}
