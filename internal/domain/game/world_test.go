package game_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-rules-engine/internal/dice/mock"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/game"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/registry"
	"github.com/KirkDiggler/dnd-rules-engine/internal/scheduler"
	"github.com/KirkDiggler/dnd-rules-engine/internal/uuid"
	"github.com/stretchr/testify/suite"
)

const testScope = "encounter-1"

type worldSuite struct {
	suite.Suite

	registry *registry.Registry
	roller   *mockdice.ManualMockRoller
	world    *game.World
}

func (s *worldSuite) SetupTest() {
	s.registry = registry.New()
	s.Require().NoError(s.registry.LoadResources([]byte(`[
		{"kind": "rage_uses", "max": 3, "recharge": "long_rest"},
		{"kind": "ki_points", "max": 4, "recharge": "short_rest"},
		{"kind": "sweep_charges", "max": 1, "recharge": "turn"}
	]`)))
	s.Require().NoError(s.registry.LoadEffects([]byte(`[
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
			"id": "effect.mage_armor",
			"kind": "buff",
			"duration": {"kind": "conditional"},
			"modifiers": [{"event": "armor_class", "bonus": 3}]
		},
		{
			"id": "effect.barkskin",
			"kind": "buff",
			"duration": {"kind": "conditional"},
			"replaces": "effect.mage_armor",
			"modifiers": [{"event": "armor_class", "bonus": 4}]
		},
		{
			"id": "effect.blessed",
			"kind": "buff",
			"duration": {"kind": "temporary", "turns": 2, "boundary": "start"},
			"modifiers": [{"event": "saving_throw", "ability": "wisdom", "bonus": 2}]
		},
		{
			"id": "effect.raging",
			"kind": "buff",
			"duration": {"kind": "conditional"},
			"modifiers": [{"event": "on_apply", "grant_resource": "rage_uses"}]
		},
		{
			"id": "effect.surge_of_focus",
			"kind": "buff",
			"duration": {"kind": "instant"},
			"modifiers": [{"event": "on_apply", "grant_resource": "ki_points"}]
		}
	]`)))
	s.Require().Empty(s.registry.Validate())

	s.roller = mockdice.NewManualMockRoller()

	world, err := game.NewWorld(&game.WorldConfig{
		Registry:  s.registry,
		Roller:    s.roller,
		Scheduler: scheduler.New(uuid.NewGoogleUUIDGenerator()),
		IDGen:     uuid.NewGoogleUUIDGenerator(),
	})
	s.Require().NoError(err)
	s.world = world

	for _, id := range []string{"rogue", "barbarian"} {
		actor, err := game.NewActor(&game.ActorConfig{
			ID:               id,
			Name:             id,
			Abilities:        map[shared.Ability]int{shared.AbilityDexterity: 14, shared.AbilityStrength: 16},
			ProficiencyBonus: 2,
			BaseArmorClass:   12,
		})
		s.Require().NoError(err)
		s.Require().NoError(s.world.AddActor(actor))
	}
}

func (s *worldSuite) applyEffect(actorID, effectID string) {
	s.Require().NoError(s.world.ApplyEffect(actorID, effectID, shared.EffectSource(effectID), actorID))
}

func (s *worldSuite) TestStealthCheckEndToEnd() {
	// Equipping the armor grants disadvantage on stealth
	s.applyEffect("rogue", "effect.plate_armor")

	s.roller.SetRolls([]int{14, 9})
	result, err := s.world.SkillCheck("rogue", shared.SkillStealth)
	s.Require().NoError(err)

	s.Equal(shared.RollModeDisadvantage, result.Mode)
	s.Equal([]int{14, 9}, result.Rolls)
	s.Equal(9, result.Selected)
	s.Equal(11, result.Total(), "selected 9 plus the +2 dexterity modifier")

	// Unequipping removes the disadvantage entry with the effect
	removed, err := s.world.RemoveEffect("rogue", "effect.plate_armor")
	s.Require().NoError(err)
	s.True(removed)

	s.roller.SetRolls([]int{14, 9})
	result, err = s.world.SkillCheck("rogue", shared.SkillStealth)
	s.Require().NoError(err)

	s.Equal(shared.RollModeNormal, result.Mode)
	s.Equal([]int{14}, result.Rolls, "a normal check draws exactly one die")
	s.Equal(14, result.Selected)
	s.Equal(16, result.Total())
}

func (s *worldSuite) TestApplyEffectReplacesDeclaredTarget() {
	s.applyEffect("rogue", "effect.mage_armor")
	s.applyEffect("rogue", "effect.barkskin")

	actor, err := s.world.Actor("rogue")
	s.Require().NoError(err)

	s.False(actor.Effects.Has("effect.mage_armor"))
	s.True(actor.Effects.Has("effect.barkskin"))
	s.Equal(1, actor.Effects.Len())

	ac, err := s.world.ArmorClass("rogue")
	s.Require().NoError(err)
	s.Equal(16, ac, "base 12 plus barkskin's +4, mage armor gone")
}

func (s *worldSuite) TestApplyEffectUnknownIDIsContentMissing() {
	err := s.world.ApplyEffect("rogue", "effect.unwritten", shared.Source{}, "rogue")
	s.Require().Error(err)
	s.True(dnderr.IsContentMissing(err))
}

func (s *worldSuite) TestTemporaryEffectExpiresAfterItsTurns() {
	s.applyEffect("rogue", "effect.blessed")

	actor, err := s.world.Actor("rogue")
	s.Require().NoError(err)

	for tick := 1; tick <= 2; tick++ {
		s.Require().NoError(s.world.TickTurnBoundary(testScope, "rogue", shared.TurnStart))
		s.True(actor.Effects.Has("effect.blessed"), "tick %d", tick)
	}

	s.Require().NoError(s.world.TickTurnBoundary(testScope, "rogue", shared.TurnStart))
	s.False(actor.Effects.Has("effect.blessed"))
}

func (s *worldSuite) TestInstantEffectRunsHooksWithoutInserting() {
	s.applyEffect("rogue", "effect.surge_of_focus")

	actor, err := s.world.Actor("rogue")
	s.Require().NoError(err)
	s.Equal(0, actor.Effects.Len())

	// Apply granted the resource, unapply revoked it immediately
	_, ok := actor.Resources.Get("ki_points")
	s.False(ok)
}

func (s *worldSuite) TestEffectGrantsAndRevokesResource() {
	s.applyEffect("barbarian", "effect.raging")

	current, ok := s.world.ResourceCurrent("barbarian", "rage_uses")
	s.True(ok)
	s.Equal(3, current)

	removed, err := s.world.RemoveEffect("barbarian", "effect.raging")
	s.Require().NoError(err)
	s.True(removed)

	_, ok = s.world.ResourceCurrent("barbarian", "rage_uses")
	s.False(ok)
}

func (s *worldSuite) TestTurnStartOrderRechargesBeforeListenersFire() {
	actor, err := s.world.Actor("barbarian")
	s.Require().NoError(err)

	charges, err := resources.New("sweep_charges", 1, resources.RechargeTurn)
	s.Require().NoError(err)
	s.Require().NoError(charges.Spend(1))
	actor.Resources.Add(charges)
	actor.Cooldowns.Set("action.sweep", resources.RechargeTurn)

	var seenCurrent int
	var seenBlocked bool
	s.world.RegisterTurnListener(testScope, "barbarian", shared.TurnStart, 1, func() {
		seenCurrent, _ = s.world.ResourceCurrent("barbarian", "sweep_charges")
		seenBlocked = actor.Cooldowns.Blocked("action.sweep")
	})

	s.Require().NoError(s.world.TickTurnBoundary(testScope, "barbarian", shared.TurnStart))
	s.Equal(1, seenCurrent, "turn resources recharge before listeners fire")
	s.False(seenBlocked, "turn cooldowns clear before listeners fire")
}

func (s *worldSuite) TestTurnEndDoesNotRecharge() {
	actor, err := s.world.Actor("barbarian")
	s.Require().NoError(err)

	charges, err := resources.New("sweep_charges", 1, resources.RechargeTurn)
	s.Require().NoError(err)
	s.Require().NoError(charges.Spend(1))
	actor.Resources.Add(charges)

	s.Require().NoError(s.world.TickTurnBoundary(testScope, "barbarian", shared.TurnEnd))
	s.Equal(0, charges.Current)
}

func (s *worldSuite) TestCancelledListenerNeverFires() {
	fired := false
	id := s.world.RegisterTurnListener(testScope, "rogue", shared.TurnStart, 2, func() { fired = true })

	s.True(s.world.CancelTurnListener(id))
	for i := 0; i < 4; i++ {
		s.Require().NoError(s.world.TickTurnBoundary(testScope, "rogue", shared.TurnStart))
	}
	s.False(fired)
}

func (s *worldSuite) TestLeaveScopeCancelsListeners() {
	s.Require().NoError(s.world.EnterScope(testScope, "rogue"))

	fired := false
	s.world.RegisterTurnListener(testScope, "rogue", shared.TurnStart, 1, func() { fired = true })

	s.Require().NoError(s.world.LeaveScope("rogue"))
	s.Require().NoError(s.world.TickTurnBoundary(testScope, "rogue", shared.TurnStart))
	s.False(fired)
}

func (s *worldSuite) TestUseActionSpendsCostAndStartsCooldown() {
	s.Require().NoError(s.registry.RegisterAction(&registry.Action{
		ID:       "action.rage",
		Cooldown: resources.RechargeTurn,
		Cost:     &registry.ActionCost{Kind: "rage_uses", Amount: 1},
	}))
	s.applyEffect("barbarian", "effect.raging")

	s.Require().NoError(s.world.UseAction("barbarian", "action.rage"))

	current, _ := s.world.ResourceCurrent("barbarian", "rage_uses")
	s.Equal(2, current)

	err := s.world.UseAction("barbarian", "action.rage")
	s.Require().Error(err)
	s.True(dnderr.IsInvalidTransition(err), "blocked while the cooldown entry persists")

	// The turn-start recharge clears the cooldown
	s.Require().NoError(s.world.TickTurnBoundary(testScope, "barbarian", shared.TurnStart))
	s.Require().NoError(s.world.UseAction("barbarian", "action.rage"))
}

func (s *worldSuite) TestUseActionInsufficientResource() {
	s.Require().NoError(s.registry.RegisterAction(&registry.Action{
		ID:   "action.flurry",
		Cost: &registry.ActionCost{Kind: "ki_points", Amount: 2},
	}))

	actor, err := s.world.Actor("rogue")
	s.Require().NoError(err)
	ki, err := resources.New("ki_points", 4, resources.RechargeShortRest)
	s.Require().NoError(err)
	s.Require().NoError(ki.Spend(3))
	actor.Resources.Add(ki)

	err = s.world.UseAction("rogue", "action.flurry")
	s.Require().Error(err)
	s.True(dnderr.IsInsufficientResource(err))
	s.Equal(1, ki.Current, "a failed spend leaves the pool untouched")
	s.False(actor.Cooldowns.Blocked("action.flurry"), "a failed use never starts the cooldown")
}

func (s *worldSuite) TestAttackRollAgainstArmorClass() {
	s.applyEffect("rogue", "effect.mage_armor")

	// Natural 20 with +3 strength and +2 proficiency against AC 15
	s.roller.SetRolls([]int{20})
	outcome, err := s.world.AttackRoll("barbarian", "rogue", shared.AbilityStrength)
	s.Require().NoError(err)

	s.Equal(15, outcome.TargetAC)
	s.True(outcome.Result.IsCrit())
	s.True(outcome.Hit)

	// The target's armor class hooks raise the bar for the next swing
	s.applyEffect("rogue", "effect.plate_armor")
	s.roller.SetRolls([]int{15})
	outcome, err = s.world.AttackRoll("barbarian", "rogue", shared.AbilityStrength)
	s.Require().NoError(err)

	s.Equal(21, outcome.TargetAC)
	s.Equal(20, outcome.Result.Total())
	s.False(outcome.Hit)
}

func TestWorldSuite(t *testing.T) {
	suite.Run(t, new(worldSuite))
}
