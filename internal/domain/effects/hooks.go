package effects

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/check"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
)

// CheckHook lets an effect contribute modifiers or advantage to an open
// check before it resolves
type CheckHook func(world WorldReader, target *check.Check)

// ArmorClassHook lets an effect contribute to an open armor class
// computation
type ArmorClassHook func(world WorldReader, target *check.ArmorClass)

// AttackResultHook inspects a resolved attack roll, e.g. to flag extra
// crit handling downstream
type AttackResultHook func(world WorldReader, result *check.Result)

// DamageRollHook lets an effect adjust an open damage roll
type DamageRollHook func(world WorldReader, target *check.DamageRoll)

// DamageResultHook lets an effect adjust resolved damage, e.g. halve it
type DamageResultHook func(world WorldReader, result *check.DamageResult)

// ResourceCostHook lets an effect adjust the cost of an action before it
// is spent
type ResourceCostHook func(world WorldReader, cost *ResourceCost)

// LifecycleHook runs when an effect is applied or unapplied. It gets the
// mutable world because it grants and revokes actor state.
type LifecycleHook func(world WorldMutator, actorID string) error

// ResourceCost is a pending resource expenditure open to adjustment
type ResourceCost struct {
	Kind   string
	Amount int
}

// Hooks is an effect definition's hook table. Nil fields and missing map
// entries mean the effect does not participate in that event.
type Hooks struct {
	OnApply   LifecycleHook
	OnUnapply LifecycleHook

	SkillCheck   map[shared.Skill]CheckHook
	SavingThrow  map[shared.Ability]CheckHook
	AttackRoll   CheckHook
	AttackResult AttackResultHook
	ArmorClass   ArmorClassHook
	DamageRoll   DamageRollHook
	DamageResult DamageResultHook
	ResourceCost ResourceCostHook
}
