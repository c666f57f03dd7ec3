package effects

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/check"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
)

// List holds an actor's active effect instances in application order.
// Hook invocation follows list order; removal preserves survivor order.
type List struct {
	instances []*Instance
}

// NewList creates an empty effect list
func NewList() *List {
	return &List{}
}

// Append adds an instance at the end of the list
func (l *List) Append(instance *Instance) {
	l.instances = append(l.instances, instance)
}

// Find returns the first active instance of the given definition
func (l *List) Find(definitionID string) *Instance {
	for _, instance := range l.instances {
		if instance.DefinitionID == definitionID {
			return instance
		}
	}
	return nil
}

// Has reports whether an instance of the given definition is active
func (l *List) Has(definitionID string) bool {
	return l.Find(definitionID) != nil
}

// RemoveByDefinition removes and returns the first instance of the given
// definition, or nil if none is active
func (l *List) RemoveByDefinition(definitionID string) *Instance {
	for idx, instance := range l.instances {
		if instance.DefinitionID == definitionID {
			l.instances = append(l.instances[:idx], l.instances[idx+1:]...)
			return instance
		}
	}
	return nil
}

// Instances returns the active instances in application order
func (l *List) Instances() []*Instance {
	out := make([]*Instance, len(l.instances))
	copy(out, l.instances)
	return out
}

// Len returns the number of active instances
func (l *List) Len() int {
	return len(l.instances)
}

// Tick advances temporary durations at a turn boundary. Instances that
// have already survived their full duration are removed and returned so
// the caller can run their unapply hooks; survivors have their elapsed
// count incremented.
func (l *List) Tick(boundary shared.TurnBoundary) []*Instance {
	var expired []*Instance
	kept := l.instances[:0]
	for _, instance := range l.instances {
		if instance.expired(boundary) {
			expired = append(expired, instance)
			continue
		}
		d := instance.Definition().Duration
		if d.Kind == DurationTemporary && d.Boundary == boundary {
			instance.Elapsed++
		}
		kept = append(kept, instance)
	}
	l.instances = kept
	return expired
}

// ApplySkillCheckHooks runs every matching skill check hook in list order
func (l *List) ApplySkillCheckHooks(world WorldReader, skill shared.Skill, target *check.Check) {
	for _, instance := range l.instances {
		if hook, ok := instance.Definition().Hooks.SkillCheck[skill]; ok && hook != nil {
			hook(world, target)
		}
	}
}

// ApplySavingThrowHooks runs every matching saving throw hook in list order
func (l *List) ApplySavingThrowHooks(world WorldReader, ability shared.Ability, target *check.Check) {
	for _, instance := range l.instances {
		if hook, ok := instance.Definition().Hooks.SavingThrow[ability]; ok && hook != nil {
			hook(world, target)
		}
	}
}

// ApplyAttackRollHooks runs every attack roll hook in list order
func (l *List) ApplyAttackRollHooks(world WorldReader, target *check.Check) {
	for _, instance := range l.instances {
		if hook := instance.Definition().Hooks.AttackRoll; hook != nil {
			hook(world, target)
		}
	}
}

// ApplyAttackResultHooks runs every attack result hook in list order
func (l *List) ApplyAttackResultHooks(world WorldReader, result *check.Result) {
	for _, instance := range l.instances {
		if hook := instance.Definition().Hooks.AttackResult; hook != nil {
			hook(world, result)
		}
	}
}

// ApplyArmorClassHooks runs every armor class hook in list order
func (l *List) ApplyArmorClassHooks(world WorldReader, target *check.ArmorClass) {
	for _, instance := range l.instances {
		if hook := instance.Definition().Hooks.ArmorClass; hook != nil {
			hook(world, target)
		}
	}
}

// ApplyDamageRollHooks runs every damage roll hook in list order
func (l *List) ApplyDamageRollHooks(world WorldReader, target *check.DamageRoll) {
	for _, instance := range l.instances {
		if hook := instance.Definition().Hooks.DamageRoll; hook != nil {
			hook(world, target)
		}
	}
}

// ApplyDamageResultHooks runs every damage result hook in list order
func (l *List) ApplyDamageResultHooks(world WorldReader, result *check.DamageResult) {
	for _, instance := range l.instances {
		if hook := instance.Definition().Hooks.DamageResult; hook != nil {
			hook(world, result)
		}
	}
}

// ApplyResourceCostHooks runs every resource cost hook in list order
func (l *List) ApplyResourceCostHooks(world WorldReader, cost *ResourceCost) {
	for _, instance := range l.instances {
		if hook := instance.Definition().Hooks.ResourceCost; hook != nil {
			hook(world, cost)
		}
	}
}
