package game

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/effects"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// ActorConfig carries everything needed to create an actor
type ActorConfig struct {
	ID               string
	Name             string
	Abilities        map[shared.Ability]int
	ProficiencyBonus int
	BaseArmorClass   int
	SkillProficiency map[shared.Skill]shared.ProficiencyLevel
	SaveProficiency  map[shared.Ability]shared.ProficiencyLevel
}

// Actor is one creature's rule state: ability scores, proficiencies, and
// the mutable piles the engine drives (effects, resources, cooldowns)
type Actor struct {
	ID               string
	Name             string
	Abilities        map[shared.Ability]int
	ProficiencyBonus int
	BaseArmorClass   int
	SkillProficiency map[shared.Skill]shared.ProficiencyLevel
	SaveProficiency  map[shared.Ability]shared.ProficiencyLevel

	Effects   *effects.List
	Resources resources.Map
	Cooldowns resources.CooldownMap
}

// NewActor creates an actor from config
func NewActor(cfg *ActorConfig) (*Actor, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("actor config is required")
	}
	if cfg.ID == "" {
		return nil, dnderr.InvalidArgument("actor id is required")
	}

	actor := &Actor{
		ID:               cfg.ID,
		Name:             cfg.Name,
		Abilities:        make(map[shared.Ability]int, len(cfg.Abilities)),
		ProficiencyBonus: cfg.ProficiencyBonus,
		BaseArmorClass:   cfg.BaseArmorClass,
		SkillProficiency: make(map[shared.Skill]shared.ProficiencyLevel, len(cfg.SkillProficiency)),
		SaveProficiency:  make(map[shared.Ability]shared.ProficiencyLevel, len(cfg.SaveProficiency)),
		Effects:          effects.NewList(),
		Resources:        resources.Map{},
		Cooldowns:        resources.CooldownMap{},
	}
	for ability, score := range cfg.Abilities {
		actor.Abilities[ability] = score
	}
	for skill, level := range cfg.SkillProficiency {
		actor.SkillProficiency[skill] = level
	}
	for ability, level := range cfg.SaveProficiency {
		actor.SaveProficiency[ability] = level
	}
	return actor, nil
}

// AbilityModifier returns the modifier derived from the actor's score.
// Unset abilities count as 10.
func (a *Actor) AbilityModifier(ability shared.Ability) int {
	score, ok := a.Abilities[ability]
	if !ok {
		score = 10
	}
	return shared.AbilityModifier(score)
}
