package testutils

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/game"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-rules-engine/internal/registry"
)

// CreateTestActor creates a fully formed test actor
func CreateTestActor(id, name string) *game.Actor {
	actor, err := game.NewActor(&game.ActorConfig{
		ID:   id,
		Name: name,
		Abilities: map[shared.Ability]int{
			shared.AbilityStrength:     16,
			shared.AbilityDexterity:    14,
			shared.AbilityConstitution: 14,
			shared.AbilityIntelligence: 10,
			shared.AbilityWisdom:       12,
			shared.AbilityCharisma:     8,
		},
		ProficiencyBonus: 2,
		BaseArmorClass:   12,
		SkillProficiency: map[shared.Skill]shared.ProficiencyLevel{
			shared.SkillAthletics: shared.ProficiencyProficient,
			shared.SkillStealth:   shared.ProficiencyNone,
		},
		SaveProficiency: map[shared.Ability]shared.ProficiencyLevel{
			shared.AbilityStrength: shared.ProficiencyProficient,
		},
	})
	if err != nil {
		panic(err)
	}
	return actor
}

// CreateTestRegistry creates a registry loaded with a small set of
// internally consistent content
func CreateTestRegistry() *registry.Registry {
	r := registry.New()

	if err := r.LoadResources([]byte(`[
		{"kind": "rage_uses", "max": 3, "recharge": "long_rest"},
		{"kind": "ki_points", "max": 4, "recharge": "short_rest"}
	]`)); err != nil {
		panic(err)
	}

	if err := r.LoadEffects([]byte(`[
		{
			"id": "effect.plate_armor",
			"kind": "debuff",
			"duration": {"kind": "conditional"},
			"modifiers": [
				{"event": "skill_check", "skill": "stealth", "advantage": "disadvantage"},
				{"event": "armor_class", "bonus": 6}
			]
		},
		{
			"id": "effect.blessed",
			"kind": "buff",
			"duration": {"kind": "temporary", "turns": 3, "boundary": "start"},
			"modifiers": [
				{"event": "saving_throw", "ability": "wisdom", "bonus": 2},
				{"event": "attack_roll", "bonus": 2}
			]
		},
		{
			"id": "effect.raging",
			"kind": "buff",
			"duration": {"kind": "conditional"},
			"modifiers": [{"event": "on_apply", "grant_resource": "rage_uses"}]
		}
	]`)); err != nil {
		panic(err)
	}

	if errs := r.Validate(); len(errs) > 0 {
		panic(errs[0])
	}
	return r
}
