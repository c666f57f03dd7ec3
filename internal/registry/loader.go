package registry

import (
	"encoding/json"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/check"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/effects"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// effectDoc is the JSON shape of an authored effect. Its modifier
// payloads are plain data compiled into hook funcs by a fixed
// per-event interpreter.
type effectDoc struct {
	ID          string           `json:"id"`
	Kind        effects.Kind     `json:"kind"`
	Description string           `json:"description,omitempty"`
	Duration    effects.Duration `json:"duration"`
	Replaces    string           `json:"replaces,omitempty"`
	Modifiers   []modifierDoc    `json:"modifiers,omitempty"`
}

// modifierDoc is one declarative modifier payload. Event selects the
// interpreter; the remaining fields are its arguments.
type modifierDoc struct {
	Event   string `json:"event"`
	Skill   string `json:"skill,omitempty"`
	Ability string `json:"ability,omitempty"`
	Bonus   int    `json:"bonus,omitempty"`

	// Advantage is "advantage" or "disadvantage" for check-type events
	Advantage string `json:"advantage,omitempty"`

	// GrantResource names a registered resource kind granted on apply
	// and revoked on unapply
	GrantResource string `json:"grant_resource,omitempty"`
}

const (
	eventSkillCheck   = "skill_check"
	eventSavingThrow  = "saving_throw"
	eventAttackRoll   = "attack_roll"
	eventArmorClass   = "armor_class"
	eventDamageRoll   = "damage_roll"
	eventResourceCost = "resource_cost"
	eventOnApply      = "on_apply"
)

// LoadEffects parses a JSON array of effect documents, compiles their
// modifier payloads into hooks, and registers the definitions
func (r *Registry) LoadEffects(data []byte) error {
	var docs []effectDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return dnderr.Wrap(err, "failed to parse effect documents")
	}

	for _, doc := range docs {
		def, grants, err := r.compileEffect(doc)
		if err != nil {
			return err
		}
		if err := r.RegisterEffect(def); err != nil {
			return err
		}
		r.grants[def.ID] = grants
	}
	return nil
}

// LoadResources parses a JSON array of resource definitions and
// registers them
func (r *Registry) LoadResources(data []byte) error {
	var docs []resources.Definition
	if err := json.Unmarshal(data, &docs); err != nil {
		return dnderr.Wrap(err, "failed to parse resource documents")
	}

	for i := range docs {
		if err := r.RegisterResource(&docs[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadActions parses a JSON array of action definitions and registers
// them
func (r *Registry) LoadActions(data []byte) error {
	var docs []Action
	if err := json.Unmarshal(data, &docs); err != nil {
		return dnderr.Wrap(err, "failed to parse action documents")
	}

	for i := range docs {
		if err := r.RegisterAction(&docs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) compileEffect(doc effectDoc) (*effects.Definition, []string, error) {
	if doc.ID == "" {
		return nil, nil, dnderr.InvalidArgument("effect document requires an id")
	}

	def := &effects.Definition{
		ID:          doc.ID,
		Kind:        doc.Kind,
		Description: doc.Description,
		Duration:    doc.Duration,
		Replaces:    doc.Replaces,
	}
	source := shared.EffectSource(doc.ID)

	var grants []string
	for _, mod := range doc.Modifiers {
		switch mod.Event {
		case eventSkillCheck:
			skill := shared.Skill(mod.Skill)
			if _, ok := shared.SkillAbility(skill); !ok {
				return nil, nil, dnderr.InvalidArgumentf("effect %q: unknown skill %q", doc.ID, mod.Skill)
			}
			if def.Hooks.SkillCheck == nil {
				def.Hooks.SkillCheck = make(map[shared.Skill]effects.CheckHook)
			}
			def.Hooks.SkillCheck[skill] = chainCheckHooks(
				def.Hooks.SkillCheck[skill],
				compileCheckHook(source, mod))

		case eventSavingThrow:
			ability := shared.Ability(mod.Ability)
			if def.Hooks.SavingThrow == nil {
				def.Hooks.SavingThrow = make(map[shared.Ability]effects.CheckHook)
			}
			def.Hooks.SavingThrow[ability] = chainCheckHooks(
				def.Hooks.SavingThrow[ability],
				compileCheckHook(source, mod))

		case eventAttackRoll:
			def.Hooks.AttackRoll = chainCheckHooks(
				def.Hooks.AttackRoll,
				compileCheckHook(source, mod))

		case eventArmorClass:
			bonus := mod.Bonus
			prev := def.Hooks.ArmorClass
			def.Hooks.ArmorClass = func(world effects.WorldReader, target *check.ArmorClass) {
				if prev != nil {
					prev(world, target)
				}
				target.Modifiers.AddModifier(source, bonus)
			}

		case eventDamageRoll:
			bonus := mod.Bonus
			prev := def.Hooks.DamageRoll
			def.Hooks.DamageRoll = func(world effects.WorldReader, target *check.DamageRoll) {
				if prev != nil {
					prev(world, target)
				}
				target.Modifiers.AddModifier(source, bonus)
			}

		case eventResourceCost:
			bonus := mod.Bonus
			prev := def.Hooks.ResourceCost
			def.Hooks.ResourceCost = func(world effects.WorldReader, cost *effects.ResourceCost) {
				if prev != nil {
					prev(world, cost)
				}
				cost.Amount += bonus
				if cost.Amount < 0 {
					cost.Amount = 0
				}
			}

		case eventOnApply:
			if mod.GrantResource == "" {
				return nil, nil, dnderr.InvalidArgumentf("effect %q: on_apply payload needs grant_resource", doc.ID)
			}
			grants = append(grants, mod.GrantResource)
			kind := mod.GrantResource
			def.Hooks.OnApply = chainLifecycleHooks(def.Hooks.OnApply, r.grantResourceHook(kind))
			def.Hooks.OnUnapply = chainLifecycleHooks(def.Hooks.OnUnapply, revokeResourceHook(kind))

		default:
			return nil, nil, dnderr.InvalidArgumentf("effect %q: unknown modifier event %q", doc.ID, mod.Event)
		}
	}

	return def, grants, nil
}

// compileCheckHook turns a declarative check payload into a hook adding
// a flat bonus, an advantage vote, or both
func compileCheckHook(source shared.Source, mod modifierDoc) effects.CheckHook {
	bonus := mod.Bonus
	advantage := mod.Advantage
	return func(_ effects.WorldReader, target *check.Check) {
		if bonus != 0 {
			target.Modifiers.AddModifier(source, bonus)
		}
		switch advantage {
		case string(shared.Advantage):
			target.Advantage.Add(shared.Advantage, source)
		case string(shared.Disadvantage):
			target.Advantage.Add(shared.Disadvantage, source)
		}
	}
}

func (r *Registry) grantResourceHook(kind string) effects.LifecycleHook {
	return func(world effects.WorldMutator, actorID string) error {
		def, err := r.Resource(kind)
		if err != nil {
			return err
		}
		resource, err := def.Build()
		if err != nil {
			return err
		}
		return world.GrantResource(actorID, resource)
	}
}

func revokeResourceHook(kind string) effects.LifecycleHook {
	return func(world effects.WorldMutator, actorID string) error {
		return world.RevokeResource(actorID, kind)
	}
}

func chainCheckHooks(prev, next effects.CheckHook) effects.CheckHook {
	if prev == nil {
		return next
	}
	return func(world effects.WorldReader, target *check.Check) {
		prev(world, target)
		next(world, target)
	}
}

func chainLifecycleHooks(prev, next effects.LifecycleHook) effects.LifecycleHook {
	if prev == nil {
		return next
	}
	return func(world effects.WorldMutator, actorID string) error {
		if err := prev(world, actorID); err != nil {
			return err
		}
		return next(world, actorID)
	}
}
