package game

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/dice"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/check"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/effects"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/registry"
	"github.com/KirkDiggler/dnd-rules-engine/internal/scheduler"
	"github.com/KirkDiggler/dnd-rules-engine/internal/uuid"
)

// WorldConfig carries the collaborators a world needs
type WorldConfig struct {
	Registry  *registry.Registry
	Roller    dice.Roller
	Scheduler *scheduler.TurnScheduler
	IDGen     uuid.Generator
}

// World owns all session state: the actors with their effect lists,
// resource maps and cooldowns, the scheduler table, and the resting
// registry. One world per session; every entry point mutates it
// synchronously, so it is not safe for concurrent use.
type World struct {
	registry  *registry.Registry
	roller    dice.Roller
	scheduler *scheduler.TurnScheduler
	idGen     uuid.Generator

	actors  map[string]*Actor
	resting map[string]shared.RestKind
	inScope map[string]string
}

// Compile-time checks that hooks get the world views they expect
var (
	_ effects.WorldReader  = (*World)(nil)
	_ effects.WorldMutator = (*World)(nil)
)

// NewWorld creates a world from config
func NewWorld(cfg *WorldConfig) (*World, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("world config is required")
	}
	if cfg.Registry == nil {
		return nil, dnderr.InvalidArgument("registry is required")
	}
	if cfg.Roller == nil {
		return nil, dnderr.InvalidArgument("roller is required")
	}
	if cfg.Scheduler == nil {
		return nil, dnderr.InvalidArgument("scheduler is required")
	}
	if cfg.IDGen == nil {
		return nil, dnderr.InvalidArgument("id generator is required")
	}

	return &World{
		registry:  cfg.Registry,
		roller:    cfg.Roller,
		scheduler: cfg.Scheduler,
		idGen:     cfg.IDGen,
		actors:    make(map[string]*Actor),
		resting:   make(map[string]shared.RestKind),
		inScope:   make(map[string]string),
	}, nil
}

// AddActor registers an actor with the world
func (w *World) AddActor(actor *Actor) error {
	if actor == nil {
		return dnderr.InvalidArgument("actor is required")
	}
	if _, exists := w.actors[actor.ID]; exists {
		return dnderr.Newf(dnderr.CodeAlreadyExists, "actor %q already exists", actor.ID)
	}
	w.actors[actor.ID] = actor
	return nil
}

// Actor returns the actor with the given id
func (w *World) Actor(actorID string) (*Actor, error) {
	actor, ok := w.actors[actorID]
	if !ok {
		return nil, dnderr.NotFoundf("actor %q not found", actorID)
	}
	return actor, nil
}

// HasEffect implements effects.WorldReader
func (w *World) HasEffect(actorID, effectID string) bool {
	actor, ok := w.actors[actorID]
	return ok && actor.Effects.Has(effectID)
}

// ResourceCurrent implements effects.WorldReader
func (w *World) ResourceCurrent(actorID, kind string) (int, bool) {
	actor, ok := w.actors[actorID]
	if !ok {
		return 0, false
	}
	resource, ok := actor.Resources.Get(kind)
	if !ok {
		return 0, false
	}
	return resource.Current, true
}

// ProficiencyBonus implements effects.WorldReader
func (w *World) ProficiencyBonus(actorID string) int {
	actor, ok := w.actors[actorID]
	if !ok {
		return 0
	}
	return actor.ProficiencyBonus
}

// GrantResource implements effects.WorldMutator. Granting a kind the
// actor already has replaces it.
func (w *World) GrantResource(actorID string, resource *resources.Resource) error {
	actor, err := w.Actor(actorID)
	if err != nil {
		return err
	}
	actor.Resources.Add(resource)
	return nil
}

// RevokeResource implements effects.WorldMutator
func (w *World) RevokeResource(actorID, kind string) error {
	actor, err := w.Actor(actorID)
	if err != nil {
		return err
	}
	actor.Resources.Remove(kind)
	return nil
}

// SetCooldown implements effects.WorldMutator
func (w *World) SetCooldown(actorID, actionID string, rule resources.RechargeRule) error {
	actor, err := w.Actor(actorID)
	if err != nil {
		return err
	}
	actor.Cooldowns.Set(actionID, rule)
	return nil
}

// SkillCheck resolves a skill check for the actor. The governing
// ability's modifier and the actor's proficiency seed the check, every
// active effect's matching hooks run in application order, then the
// check resolves through the roller.
func (w *World) SkillCheck(actorID string, skill shared.Skill) (*check.Result, error) {
	actor, err := w.Actor(actorID)
	if err != nil {
		return nil, err
	}

	c := check.NewSkillCheck(skill)
	ability, ok := shared.SkillAbility(skill)
	if !ok {
		return nil, dnderr.InvalidArgumentf("unknown skill %q", skill)
	}
	if mod := actor.AbilityModifier(ability); mod != 0 {
		c.Modifiers.AddModifier(shared.AbilitySource(ability), mod)
	}
	c.SetProficiency(actor.SkillProficiency[skill])

	actor.Effects.ApplySkillCheckHooks(w, skill, c)

	return c.Perform(w.roller, actor.ProficiencyBonus)
}

// SavingThrow resolves a saving throw for the actor
func (w *World) SavingThrow(actorID string, ability shared.Ability) (*check.Result, error) {
	actor, err := w.Actor(actorID)
	if err != nil {
		return nil, err
	}

	c := check.NewSavingThrow(ability)
	if mod := actor.AbilityModifier(ability); mod != 0 {
		c.Modifiers.AddModifier(shared.AbilitySource(ability), mod)
	}
	c.SetProficiency(actor.SaveProficiency[ability])

	actor.Effects.ApplySavingThrowHooks(w, ability, c)

	return c.Perform(w.roller, actor.ProficiencyBonus)
}

// AttackOutcome is a resolved attack against a target's armor class
type AttackOutcome struct {
	Result   *check.Result
	TargetAC int
	Hit      bool
}

// AttackRoll resolves an attack by the actor against the target. The
// attacker's ability modifier seeds the roll, both sides' hooks run
// (attack roll hooks for the attacker, armor class hooks for the
// target), and the hit still requires total at or above the armor class
// even on a natural 20.
func (w *World) AttackRoll(actorID, targetID string, ability shared.Ability) (*AttackOutcome, error) {
	actor, err := w.Actor(actorID)
	if err != nil {
		return nil, err
	}

	targetAC, err := w.ArmorClass(targetID)
	if err != nil {
		return nil, err
	}

	c := check.NewAttackRoll()
	if mod := actor.AbilityModifier(ability); mod != 0 {
		c.Modifiers.AddModifier(shared.AbilitySource(ability), mod)
	}
	c.SetProficiency(shared.ProficiencyProficient)

	actor.Effects.ApplyAttackRollHooks(w, c)

	result, err := c.Perform(w.roller, actor.ProficiencyBonus)
	if err != nil {
		return nil, err
	}

	actor.Effects.ApplyAttackResultHooks(w, result)

	return &AttackOutcome{
		Result:   result,
		TargetAC: targetAC,
		Hit:      result.IsSuccess(targetAC),
	}, nil
}

// ArmorClass computes the actor's current armor class, base plus every
// armor class hook contribution
func (w *World) ArmorClass(actorID string) (int, error) {
	actor, err := w.Actor(actorID)
	if err != nil {
		return 0, err
	}

	ac := check.NewArmorClass(actor.BaseArmorClass)
	actor.Effects.ApplyArmorClassHooks(w, ac)
	return ac.Value(), nil
}

// DamageRoll resolves a damage roll for the actor with every damage
// hook applied
func (w *World) DamageRoll(actorID string, roll *check.DamageRoll) (*check.DamageResult, error) {
	actor, err := w.Actor(actorID)
	if err != nil {
		return nil, err
	}

	actor.Effects.ApplyDamageRollHooks(w, roll)

	result, err := roll.Roll(w.roller)
	if err != nil {
		return nil, err
	}

	actor.Effects.ApplyDamageResultHooks(w, result)
	return result, nil
}

// ApplyEffect applies a registered effect to the actor. The apply hook
// runs first (it may grant state), then any replaced effect is removed,
// then the instance joins the actor's list. Instant effects run apply
// and unapply back to back and are never inserted.
func (w *World) ApplyEffect(actorID, effectID string, source shared.Source, applierID string) error {
	actor, err := w.Actor(actorID)
	if err != nil {
		return err
	}

	def, err := w.registry.Effect(effectID)
	if err != nil {
		return err
	}

	if def.Hooks.OnApply != nil {
		if err := def.Hooks.OnApply(w, actorID); err != nil {
			return dnderr.Wrapf(err, "failed to apply effect %q", effectID)
		}
	}

	if def.Duration.Kind == effects.DurationInstant {
		if def.Hooks.OnUnapply != nil {
			if err := def.Hooks.OnUnapply(w, actorID); err != nil {
				return dnderr.Wrapf(err, "failed to resolve instant effect %q", effectID)
			}
		}
		return nil
	}

	if def.Replaces != "" {
		if _, err := w.RemoveEffect(actorID, def.Replaces); err != nil {
			return err
		}
	}

	actor.Effects.Append(effects.NewInstance(w.idGen.New(), def, source, applierID))
	return nil
}

// RemoveEffect removes an active effect from the actor and runs its
// unapply hook. Removing an effect that is not active is a no-op;
// reports whether anything was removed.
func (w *World) RemoveEffect(actorID, effectID string) (bool, error) {
	actor, err := w.Actor(actorID)
	if err != nil {
		return false, err
	}

	instance := actor.Effects.RemoveByDefinition(effectID)
	if instance == nil {
		return false, nil
	}

	if hook := instance.Definition().Hooks.OnUnapply; hook != nil {
		if err := hook(w, actorID); err != nil {
			return true, dnderr.Wrapf(err, "failed to unapply effect %q", effectID)
		}
	}
	return true, nil
}

// TickTurnBoundary processes a turn boundary for the actor. At turn
// start the order is fixed: recharge turn resources and cooldowns,
// tick and expire effects, then fire scheduler listeners. Turn end
// skips the recharge step.
func (w *World) TickTurnBoundary(scope, actorID string, boundary shared.TurnBoundary) error {
	actor, err := w.Actor(actorID)
	if err != nil {
		return err
	}

	if boundary == shared.TurnStart {
		actor.Resources.RechargeOn(resources.RechargeTurn)
		actor.Cooldowns.RechargeOn(resources.RechargeTurn)
	}

	for _, instance := range actor.Effects.Tick(boundary) {
		if hook := instance.Definition().Hooks.OnUnapply; hook != nil {
			if err := hook(w, actorID); err != nil {
				return dnderr.Wrapf(err, "failed to expire effect %q", instance.DefinitionID)
			}
		}
	}

	w.scheduler.Tick(scheduler.Key{Scope: scope, ActorID: actorID, Boundary: boundary})
	return nil
}

// RegisterTurnListener registers a countdown listener and returns its id
func (w *World) RegisterTurnListener(scope, actorID string, boundary shared.TurnBoundary, remaining int, callback scheduler.Callback) string {
	return w.scheduler.Register(scheduler.Key{Scope: scope, ActorID: actorID, Boundary: boundary}, remaining, callback)
}

// CancelTurnListener cancels a listener before it fires
func (w *World) CancelTurnListener(id string) bool {
	return w.scheduler.Cancel(id)
}

// EnterScope marks the actor as participating in a turn-based scope
func (w *World) EnterScope(scope, actorID string) error {
	if _, err := w.Actor(actorID); err != nil {
		return err
	}
	w.inScope[actorID] = scope
	return nil
}

// LeaveScope removes the actor from its scope and cancels every
// listener keyed to it there. Cancellation is synchronous and total.
func (w *World) LeaveScope(actorID string) error {
	scope, ok := w.inScope[actorID]
	if !ok {
		return nil
	}
	delete(w.inScope, actorID)
	w.scheduler.CancelForActor(scope, actorID)
	return nil
}

// InScope returns the actor's current scope
func (w *World) InScope(actorID string) (string, bool) {
	scope, ok := w.inScope[actorID]
	return scope, ok
}

// SpendResource spends from one of the actor's resources, with every
// resource cost hook applied to the amount first
func (w *World) SpendResource(actorID, kind string, amount int) error {
	actor, err := w.Actor(actorID)
	if err != nil {
		return err
	}

	cost := &effects.ResourceCost{Kind: kind, Amount: amount}
	actor.Effects.ApplyResourceCostHooks(w, cost)
	if cost.Amount == 0 {
		return nil
	}

	resource, ok := actor.Resources.Get(cost.Kind)
	if !ok {
		return dnderr.ContentMissing("resource", cost.Kind).WithMeta("actor", actorID)
	}
	return resource.Spend(cost.Amount)
}

// UseAction resolves a registered action for the actor: the cooldown
// must be clear, the cost (after cost hooks) must be affordable, and a
// successful use starts the cooldown
func (w *World) UseAction(actorID, actionID string) error {
	actor, err := w.Actor(actorID)
	if err != nil {
		return err
	}

	action, err := w.registry.Action(actionID)
	if err != nil {
		return err
	}

	if actor.Cooldowns.Blocked(actionID) {
		return dnderr.InvalidTransition("action is on cooldown", []string{actorID}).
			WithMeta("action", actionID)
	}

	if action.Cost != nil {
		if err := w.SpendResource(actorID, action.Cost.Kind, action.Cost.Amount); err != nil {
			return err
		}
	}

	// A "never" cooldown is legitimate: it blocks the action for the
	// rest of the session.
	if action.Cooldown != "" {
		actor.Cooldowns.Set(actionID, action.Cooldown)
	}
	return nil
}

// Recharge issues a recharge trigger to the actor, restoring covered
// resources and clearing covered cooldowns. Returns what changed.
func (w *World) Recharge(actorID string, trigger resources.RechargeRule) (recharged, cleared []string, err error) {
	actor, err := w.Actor(actorID)
	if err != nil {
		return nil, nil, err
	}
	return actor.Resources.RechargeOn(trigger), actor.Cooldowns.RechargeOn(trigger), nil
}
