package effects_test

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/check"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/effects"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func temporaryDef(id string, turns int) *effects.Definition {
	return &effects.Definition{
		ID:       id,
		Kind:     effects.KindBuff,
		Duration: effects.Temporary(turns, shared.TurnStart),
	}
}

func newInstance(seq int, def *effects.Definition) *effects.Instance {
	return effects.NewInstance(fmt.Sprintf("inst-%d", seq), def, shared.EffectSource(def.ID), "actor-1")
}

func TestList_TemporaryEffectSurvivesExactlyItsDuration(t *testing.T) {
	list := effects.NewList()
	instance := newInstance(1, temporaryDef("effect.blessed", 3))
	list.Append(instance)

	for tick := 1; tick <= 3; tick++ {
		expired := list.Tick(shared.TurnStart)
		assert.Empty(t, expired, "tick %d should not expire", tick)
		assert.Equal(t, 1, list.Len())
	}

	expired := list.Tick(shared.TurnStart)
	assert.Len(t, expired, 1)
	assert.Equal(t, instance.ID, expired[0].ID)
	assert.Equal(t, 0, list.Len())

	// Further ticks never surface it again
	assert.Empty(t, list.Tick(shared.TurnStart))
}

func TestList_TickIgnoresNonMatchingBoundary(t *testing.T) {
	list := effects.NewList()
	def := &effects.Definition{
		ID:       "effect.winded",
		Kind:     effects.KindDebuff,
		Duration: effects.Temporary(1, shared.TurnEnd),
	}
	instance := newInstance(1, def)
	list.Append(instance)

	assert.Empty(t, list.Tick(shared.TurnStart))
	assert.Equal(t, 0, instance.Elapsed)

	assert.Empty(t, list.Tick(shared.TurnEnd))
	assert.Equal(t, 1, instance.Elapsed)

	expired := list.Tick(shared.TurnEnd)
	assert.Len(t, expired, 1)
}

func TestList_TickNeverExpiresPermanentEffects(t *testing.T) {
	list := effects.NewList()
	def := &effects.Definition{
		ID:       "effect.strength_of_the_bear",
		Kind:     effects.KindBuff,
		Duration: effects.Permanent(),
	}
	list.Append(newInstance(1, def))

	for i := 0; i < 10; i++ {
		assert.Empty(t, list.Tick(shared.TurnStart))
	}
	assert.Equal(t, 1, list.Len())
}

func TestList_RemovePreservesSurvivorOrder(t *testing.T) {
	list := effects.NewList()
	list.Append(newInstance(1, temporaryDef("effect.a", 5)))
	list.Append(newInstance(2, temporaryDef("effect.b", 5)))
	list.Append(newInstance(3, temporaryDef("effect.c", 5)))

	removed := list.RemoveByDefinition("effect.b")
	assert.NotNil(t, removed)
	assert.Equal(t, "effect.b", removed.DefinitionID)

	instances := list.Instances()
	assert.Len(t, instances, 2)
	assert.Equal(t, "effect.a", instances[0].DefinitionID)
	assert.Equal(t, "effect.c", instances[1].DefinitionID)

	assert.Nil(t, list.RemoveByDefinition("effect.b"))
}

func TestList_HookOrderFollowsApplicationOrder(t *testing.T) {
	var order []string
	hookFor := func(id string) effects.CheckHook {
		return func(_ effects.WorldReader, _ *check.Check) {
			order = append(order, id)
		}
	}

	list := effects.NewList()
	for _, id := range []string{"effect.first", "effect.second", "effect.third"} {
		def := &effects.Definition{
			ID:       id,
			Kind:     effects.KindBuff,
			Duration: effects.Permanent(),
			Hooks: effects.Hooks{
				SkillCheck: map[shared.Skill]effects.CheckHook{
					shared.SkillStealth: hookFor(id),
				},
			},
		}
		list.Append(newInstance(len(order), def))
	}

	c := check.NewSkillCheck(shared.SkillStealth)
	list.ApplySkillCheckHooks(nil, shared.SkillStealth, c)

	assert.Equal(t, []string{"effect.first", "effect.second", "effect.third"}, order)
}

func TestList_SkillHooksOnlyFireForMatchingSkill(t *testing.T) {
	fired := false
	def := &effects.Definition{
		ID:       "effect.pass_without_trace",
		Kind:     effects.KindBuff,
		Duration: effects.Permanent(),
		Hooks: effects.Hooks{
			SkillCheck: map[shared.Skill]effects.CheckHook{
				shared.SkillStealth: func(_ effects.WorldReader, target *check.Check) {
					fired = true
					target.Modifiers.AddModifier(shared.EffectSource("effect.pass_without_trace"), 10)
				},
			},
		},
	}

	list := effects.NewList()
	list.Append(newInstance(1, def))

	perception := check.NewSkillCheck(shared.SkillPerception)
	list.ApplySkillCheckHooks(nil, shared.SkillPerception, perception)
	assert.False(t, fired)

	stealth := check.NewSkillCheck(shared.SkillStealth)
	list.ApplySkillCheckHooks(nil, shared.SkillStealth, stealth)
	assert.True(t, fired)
	assert.Equal(t, 10, stealth.Modifiers.Total())
}
