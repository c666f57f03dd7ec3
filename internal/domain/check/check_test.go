package check_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-rules-engine/internal/dice/mock"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/check"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_NormalDrawsOneDie(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{12})

	c := check.NewSkillCheck(shared.SkillAthletics)
	c.Modifiers.AddModifier(shared.AbilitySource(shared.AbilityStrength), 3)

	result, err := c.Perform(roller, 2)
	require.NoError(t, err)

	assert.Len(t, result.Rolls, 1)
	assert.Equal(t, 12, result.Selected)
	assert.Equal(t, shared.RollModeNormal, result.Mode)
	assert.Equal(t, 15, result.Total())
}

func TestCheck_AdvantageSelectsMaxOfTwo(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{7, 16})

	c := check.NewSkillCheck(shared.SkillPerception)
	c.Advantage.Add(shared.Advantage, shared.EffectSource("effect.guidance"))

	result, err := c.Perform(roller, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{7, 16}, result.Rolls)
	assert.Equal(t, 16, result.Selected)
	assert.Equal(t, shared.RollModeAdvantage, result.Mode)
}

func TestCheck_DisadvantageSelectsMinOfTwo(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{14, 9})

	c := check.NewSkillCheck(shared.SkillStealth)
	c.Advantage.Add(shared.Disadvantage, shared.ItemSource("item.plate_armor"))

	result, err := c.Perform(roller, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{14, 9}, result.Rolls)
	assert.Equal(t, 9, result.Selected)
	assert.Equal(t, shared.RollModeDisadvantage, result.Mode)
}

func TestCheck_NegativeModifiersDoNotReduceBelowSelectedDie(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{10})

	c := check.NewSavingThrow(shared.AbilityWisdom)
	c.Modifiers.AddModifier(shared.AbilitySource(shared.AbilityWisdom), -4)

	result, err := c.Perform(roller, 2)
	require.NoError(t, err)

	assert.Equal(t, -4, result.ModifierTotal())
	assert.Equal(t, 10, result.Total())
}

func TestCheck_ProficiencyAppliedAtResolution(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{10})

	c := check.NewSkillCheck(shared.SkillAcrobatics)
	c.Modifiers.AddModifier(shared.AbilitySource(shared.AbilityDexterity), 2)
	c.SetProficiency(shared.ProficiencyExpertise)

	result, err := c.Perform(roller, 3)
	require.NoError(t, err)

	assert.Equal(t, 8, result.ModifierTotal())
	assert.Equal(t, 18, result.Total())
}

func TestCheck_CritFlagsDependOnlyOnRawDie(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{20})

	c := check.NewSavingThrow(shared.AbilityConstitution)
	c.Modifiers.AddModifier(shared.AbilitySource(shared.AbilityConstitution), -10)

	result, err := c.Perform(roller, 2)
	require.NoError(t, err)
	assert.True(t, result.IsCrit())
	assert.False(t, result.IsCritFail())

	roller.SetRolls([]int{1})
	c2 := check.NewSavingThrow(shared.AbilityConstitution)
	c2.Modifiers.AddModifier(shared.AbilitySource(shared.AbilityConstitution), 10)

	result2, err := c2.Perform(roller, 2)
	require.NoError(t, err)
	assert.False(t, result2.IsCrit())
	assert.True(t, result2.IsCritFail())
}

func TestResult_IsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		kind     check.Kind
		selected int
		mods     int
		target   int
		want     bool
	}{
		{"crit fail always fails", check.KindSave, 1, 30, 10, false},
		{"crit succeeds on saves regardless of total", check.KindSave, 20, -30, 45, true},
		{"crit succeeds on skill checks regardless of total", check.KindSkill, 20, 0, 40, true},
		{"crit attack still needs total at target", check.KindAttack, 20, 0, 25, false},
		{"crit attack hits when total reaches target", check.KindAttack, 20, 5, 25, true},
		{"meets target", check.KindSkill, 12, 3, 15, true},
		{"misses target", check.KindSkill, 12, 2, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := shared.NewModifierSet()
			breakdown.AddModifier(shared.CustomSource("test"), tt.mods)
			result := &check.Result{
				Kind:      tt.kind,
				Selected:  tt.selected,
				Mode:      shared.RollModeNormal,
				Breakdown: breakdown,
			}
			assert.Equal(t, tt.want, result.IsSuccess(tt.target))
		})
	}
}

func TestCheck_CannotPerformTwice(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{10, 10})

	c := check.NewAbilityCheck(shared.AbilityIntelligence)
	_, err := c.Perform(roller, 2)
	require.NoError(t, err)
	assert.True(t, c.Resolved())

	_, err = c.Perform(roller, 2)
	assert.Error(t, err)
}

func TestDamageRoll_CriticalDoublesDiceNotModifiers(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{6, 4, 5, 2})

	d := check.NewDamageRoll(2, 6, check.DamageSlashing)
	d.Modifiers.AddModifier(shared.AbilitySource(shared.AbilityStrength), 3)
	d.Critical = true

	result, err := d.Roll(roller)
	require.NoError(t, err)

	assert.Len(t, result.Rolls, 4)
	assert.Equal(t, 20, result.Total)
	assert.True(t, result.Critical)
}

func TestDamageRoll_NeverNegative(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{1})

	d := check.NewDamageRoll(1, 4, check.DamageBludgeoning)
	d.Modifiers.AddModifier(shared.CustomSource("weakened"), -5)

	result, err := d.Roll(roller)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestArmorClass_Value(t *testing.T) {
	ac := check.NewArmorClass(12)
	ac.Modifiers.AddModifier(shared.ItemSource("item.shield"), 2)
	ac.Modifiers.AddModifier(shared.EffectSource("effect.shield_of_faith"), 2)

	assert.Equal(t, 16, ac.Value())
}
