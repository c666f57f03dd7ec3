package actors

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/effects"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/game"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/registry"
)

// Snapshot captures an actor's state as a storable document
func Snapshot(actor *game.Actor, scope string) *Data {
	data := &Data{
		ID:               actor.ID,
		Name:             actor.Name,
		Scope:            scope,
		Abilities:        actor.Abilities,
		ProficiencyBonus: actor.ProficiencyBonus,
		BaseArmorClass:   actor.BaseArmorClass,
		SkillProficiency: actor.SkillProficiency,
		SaveProficiency:  actor.SaveProficiency,
		Resources:        actor.Resources.Clone(),
		Cooldowns:        actor.Cooldowns.Clone(),
	}
	for _, instance := range actor.Effects.Instances() {
		data.Effects = append(data.Effects, &EffectData{
			ID:           instance.ID,
			DefinitionID: instance.DefinitionID,
			Source:       instance.Source,
			ApplierID:    instance.ApplierID,
			Elapsed:      instance.Elapsed,
		})
	}
	return data
}

// Restore rebuilds an actor from a snapshot, rebinding effect instances
// to their definitions in the registry. A snapshot referencing an
// unregistered definition surfaces a content missing error.
func Restore(data *Data, reg *registry.Registry) (*game.Actor, error) {
	if data == nil {
		return nil, dnderr.InvalidArgument("actor data is required")
	}

	actor, err := game.NewActor(&game.ActorConfig{
		ID:               data.ID,
		Name:             data.Name,
		Abilities:        data.Abilities,
		ProficiencyBonus: data.ProficiencyBonus,
		BaseArmorClass:   data.BaseArmorClass,
		SkillProficiency: data.SkillProficiency,
		SaveProficiency:  data.SaveProficiency,
	})
	if err != nil {
		return nil, err
	}

	for _, stored := range data.Effects {
		def, err := reg.Effect(stored.DefinitionID)
		if err != nil {
			return nil, dnderr.Wrapf(err, "actor %q references unknown effect", data.ID)
		}
		instance := effects.NewInstance(stored.ID, def, stored.Source, stored.ApplierID)
		instance.Elapsed = stored.Elapsed
		actor.Effects.Append(instance)
	}

	for kind, resource := range data.Resources {
		clone := resource.Clone()
		clone.Kind = kind
		actor.Resources.Add(clone)
	}
	for actionID, rule := range data.Cooldowns {
		actor.Cooldowns.Set(actionID, rule)
	}
	return actor, nil
}
