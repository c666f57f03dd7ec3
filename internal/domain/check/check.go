package check

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/dice"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// Kind classifies what a d20 check is resolving
type Kind string

const (
	KindSkill   Kind = "skill"
	KindSave    Kind = "save"
	KindAbility Kind = "ability"
	KindAttack  Kind = "attack"
)

// Check is an open d20 check. Hooks may keep appending modifiers and
// advantage entries right up until Perform resolves it. A resolved check
// must not be performed again.
type Check struct {
	kind    Kind
	skill   shared.Skill
	ability shared.Ability

	Modifiers *shared.ModifierSet
	Advantage *shared.AdvantageTracker

	proficiency shared.ProficiencyLevel
	resolved    bool
}

// NewSkillCheck creates an open skill check. The governing ability comes
// from the skill table.
func NewSkillCheck(skill shared.Skill) *Check {
	ability, _ := shared.SkillAbility(skill)
	return &Check{
		kind:      KindSkill,
		skill:     skill,
		ability:   ability,
		Modifiers: shared.NewModifierSet(),
		Advantage: shared.NewAdvantageTracker(),
	}
}

// NewSavingThrow creates an open saving throw against the given ability
func NewSavingThrow(ability shared.Ability) *Check {
	return &Check{
		kind:      KindSave,
		ability:   ability,
		Modifiers: shared.NewModifierSet(),
		Advantage: shared.NewAdvantageTracker(),
	}
}

// NewAbilityCheck creates an open raw ability check
func NewAbilityCheck(ability shared.Ability) *Check {
	return &Check{
		kind:      KindAbility,
		ability:   ability,
		Modifiers: shared.NewModifierSet(),
		Advantage: shared.NewAdvantageTracker(),
	}
}

// NewAttackRoll creates an open attack roll
func NewAttackRoll() *Check {
	return &Check{
		kind:      KindAttack,
		Modifiers: shared.NewModifierSet(),
		Advantage: shared.NewAdvantageTracker(),
	}
}

// Kind returns what this check resolves
func (c *Check) Kind() Kind {
	return c.kind
}

// Skill returns the skill for skill checks, empty otherwise
func (c *Check) Skill() shared.Skill {
	return c.skill
}

// Ability returns the governing ability
func (c *Check) Ability() shared.Ability {
	return c.ability
}

// SetProficiency records the proficiency level applied at resolution
func (c *Check) SetProficiency(level shared.ProficiencyLevel) {
	c.proficiency = level
}

// Perform resolves the check. It draws one d20 under a normal roll mode,
// two under advantage or disadvantage selecting the max or min. The check
// is terminal afterwards.
func (c *Check) Perform(roller dice.Roller, proficiencyBonus int) (*Result, error) {
	if c.resolved {
		return nil, dnderr.InvalidArgument("check already resolved")
	}

	breakdown := c.Modifiers.Clone()
	if bonus := c.proficiency.Bonus(proficiencyBonus); bonus != 0 {
		breakdown.AddModifier(shared.ProficiencySource(c.proficiency), bonus)
	}

	mode := c.Advantage.RollMode()

	var roll *dice.RollResult
	var err error
	switch mode {
	case shared.RollModeAdvantage:
		roll, err = roller.RollWithAdvantage(20, 0)
	case shared.RollModeDisadvantage:
		roll, err = roller.RollWithDisadvantage(20, 0)
	default:
		roll, err = roller.Roll(1, 20, 0)
	}
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll check")
	}

	c.resolved = true

	rolls := make([]int, len(roll.Rolls))
	copy(rolls, roll.Rolls)

	return &Result{
		Kind:      c.kind,
		Skill:     c.skill,
		Ability:   c.ability,
		Rolls:     rolls,
		Selected:  roll.RawTotal,
		Mode:      mode,
		Breakdown: breakdown,
	}, nil
}

// Resolved reports whether Perform already ran
func (c *Check) Resolved() bool {
	return c.resolved
}
