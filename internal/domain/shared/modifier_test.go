package shared_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestModifierSet_AddReplacesExistingSource(t *testing.T) {
	mods := shared.NewModifierSet()
	belt := shared.ItemSource("item.belt_of_strength")

	mods.AddModifier(belt, 4)
	mods.AddModifier(belt, 2)

	assert.Equal(t, 1, mods.Len())
	value, ok := mods.Get(belt)
	assert.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, mods.Total())
}

func TestModifierSet_TotalSumsAllSources(t *testing.T) {
	mods := shared.NewModifierSet()
	mods.AddModifier(shared.ItemSource("item.belt_of_strength"), 4)
	mods.AddModifier(shared.EffectSource("effect.bless"), 1)
	mods.AddModifier(shared.CustomSource("curse"), -2)

	assert.Equal(t, 3, mods.Total())

	mods.RemoveModifier(shared.EffectSource("effect.bless"))
	assert.Equal(t, 2, mods.Total())
	assert.Equal(t, 2, mods.Len())
}

func TestModifierSet_ScaleRoundsHalfAwayFromZero(t *testing.T) {
	mods := shared.NewModifierSet()
	mods.AddModifier(shared.AbilitySource(shared.AbilityStrength), 3)
	mods.AddModifier(shared.AbilitySource(shared.AbilityDexterity), -3)

	mods.Scale(0.5)

	strength, _ := mods.Get(shared.AbilitySource(shared.AbilityStrength))
	dexterity, _ := mods.Get(shared.AbilitySource(shared.AbilityDexterity))
	assert.Equal(t, 2, strength, "1.5 rounds away from zero to 2")
	assert.Equal(t, -2, dexterity, "-1.5 rounds away from zero to -2")
}

func TestModifierSet_CloneIsIndependent(t *testing.T) {
	mods := shared.NewModifierSet()
	mods.AddModifier(shared.ItemSource("item.ring"), 1)

	clone := mods.Clone()
	clone.AddModifier(shared.ItemSource("item.ring"), 5)

	original, _ := mods.Get(shared.ItemSource("item.ring"))
	assert.Equal(t, 1, original)
}

func TestAbilityModifier_RoundsDown(t *testing.T) {
	assert.Equal(t, 0, shared.AbilityModifier(10))
	assert.Equal(t, 0, shared.AbilityModifier(11))
	assert.Equal(t, 2, shared.AbilityModifier(14))
	assert.Equal(t, -1, shared.AbilityModifier(8))
	assert.Equal(t, -2, shared.AbilityModifier(7))
}

func TestProficiencyLevel_Bonus(t *testing.T) {
	assert.Equal(t, 0, shared.ProficiencyNone.Bonus(3))
	assert.Equal(t, 1, shared.ProficiencyHalf.Bonus(3))
	assert.Equal(t, 3, shared.ProficiencyProficient.Bonus(3))
	assert.Equal(t, 6, shared.ProficiencyExpertise.Bonus(3))
}
