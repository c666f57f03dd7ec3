package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"log"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/check"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/game"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/repositories/actors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/scheduler"
)

// Repository is an alias for the actor repository interface
type Repository = actors.Repository

// Service drives checks, effects, and turn boundaries for one encounter
type Service interface {
	// PerformCheck resolves a skill check or saving throw against a DC
	PerformCheck(ctx context.Context, input *PerformCheckInput) (*PerformCheckOutput, error)

	// Attack resolves an attack roll against a target's armor class
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)

	// ApplyEffect applies a registered effect to an actor
	ApplyEffect(ctx context.Context, input *ApplyEffectInput) error

	// RemoveEffect removes an active effect from an actor
	RemoveEffect(ctx context.Context, input *RemoveEffectInput) (*RemoveEffectOutput, error)

	// TickTurnBoundary processes a turn boundary for an actor
	TickTurnBoundary(ctx context.Context, input *TickTurnBoundaryInput) error

	// RegisterTurnListener registers a countdown listener
	RegisterTurnListener(ctx context.Context, input *RegisterTurnListenerInput) (*RegisterTurnListenerOutput, error)

	// CancelTurnListener cancels a listener before it fires
	CancelTurnListener(ctx context.Context, listenerID string) (*CancelTurnListenerOutput, error)

	// UseAction resolves a registered action for an actor
	UseAction(ctx context.Context, input *UseActionInput) error
}

// CheckKind selects which check PerformCheck resolves
type CheckKind string

const (
	CheckKindSkill CheckKind = "skill"
	CheckKindSave  CheckKind = "save"
)

// PerformCheckInput contains data for resolving a check
type PerformCheckInput struct {
	ActorID string
	Kind    CheckKind
	Skill   shared.Skill   // Skill checks only
	Ability shared.Ability // Saving throws only
	DC      int
}

// PerformCheckOutput is the resolved check
type PerformCheckOutput struct {
	Result  *check.Result
	Success bool
}

// AttackInput contains data for resolving an attack
type AttackInput struct {
	ActorID  string
	TargetID string
	Ability  shared.Ability
}

// AttackOutput is the resolved attack
type AttackOutput struct {
	Outcome *game.AttackOutcome
}

// ApplyEffectInput contains data for applying an effect
type ApplyEffectInput struct {
	ActorID  string
	EffectID string
	Source   shared.Source
	Applier  string
}

// RemoveEffectInput contains data for removing an effect
type RemoveEffectInput struct {
	ActorID  string
	EffectID string
}

// RemoveEffectOutput reports whether anything was removed
type RemoveEffectOutput struct {
	Removed bool
}

// TickTurnBoundaryInput identifies one actor's turn boundary
type TickTurnBoundaryInput struct {
	Scope    string
	ActorID  string
	Boundary shared.TurnBoundary
}

// RegisterTurnListenerInput contains data for registering a listener
type RegisterTurnListenerInput struct {
	Scope     string
	ActorID   string
	Boundary  shared.TurnBoundary
	Remaining int
	Callback  scheduler.Callback
}

// RegisterTurnListenerOutput carries the listener id for cancellation
type RegisterTurnListenerOutput struct {
	ListenerID string
}

// CancelTurnListenerOutput reports whether a listener was cancelled
type CancelTurnListenerOutput struct {
	Cancelled bool
}

// UseActionInput contains data for using an action
type UseActionInput struct {
	ActorID  string
	ActionID string
}

// service implements the Service interface
type service struct {
	world      *game.World
	repository Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	World      *game.World // Required
	Repository Repository  // Required
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg.World == nil {
		panic("world is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	return &service{
		world:      cfg.World,
		repository: cfg.Repository,
	}
}

func (s *service) PerformCheck(ctx context.Context, input *PerformCheckInput) (*PerformCheckOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	var result *check.Result
	var err error
	switch input.Kind {
	case CheckKindSkill:
		result, err = s.world.SkillCheck(input.ActorID, input.Skill)
	case CheckKindSave:
		result, err = s.world.SavingThrow(input.ActorID, input.Ability)
	default:
		return nil, dnderr.InvalidArgumentf("unknown check kind %q", input.Kind)
	}
	if err != nil {
		return nil, err
	}

	success := result.IsSuccess(input.DC)
	log.Printf("Check for actor %s: %s (DC %d, success=%v)", input.ActorID, result, input.DC, success)

	return &PerformCheckOutput{
		Result:  result,
		Success: success,
	}, nil
}

func (s *service) Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	outcome, err := s.world.AttackRoll(input.ActorID, input.TargetID, input.Ability)
	if err != nil {
		return nil, err
	}

	log.Printf("Attack %s -> %s: total %d vs AC %d (hit=%v)",
		input.ActorID, input.TargetID, outcome.Result.Total(), outcome.TargetAC, outcome.Hit)

	return &AttackOutput{Outcome: outcome}, nil
}

func (s *service) ApplyEffect(ctx context.Context, input *ApplyEffectInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input is required")
	}

	if err := s.world.ApplyEffect(input.ActorID, input.EffectID, input.Source, input.Applier); err != nil {
		return err
	}
	log.Printf("Applied effect %s to actor %s", input.EffectID, input.ActorID)

	return s.persist(ctx, input.ActorID)
}

func (s *service) RemoveEffect(ctx context.Context, input *RemoveEffectInput) (*RemoveEffectOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	removed, err := s.world.RemoveEffect(input.ActorID, input.EffectID)
	if err != nil {
		return nil, err
	}
	if removed {
		log.Printf("Removed effect %s from actor %s", input.EffectID, input.ActorID)
		if err := s.persist(ctx, input.ActorID); err != nil {
			return nil, err
		}
	}

	return &RemoveEffectOutput{Removed: removed}, nil
}

func (s *service) TickTurnBoundary(ctx context.Context, input *TickTurnBoundaryInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input is required")
	}

	if err := s.world.TickTurnBoundary(input.Scope, input.ActorID, input.Boundary); err != nil {
		return err
	}
	return s.persist(ctx, input.ActorID)
}

func (s *service) RegisterTurnListener(ctx context.Context, input *RegisterTurnListenerInput) (*RegisterTurnListenerOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}
	if input.Callback == nil {
		return nil, dnderr.InvalidArgument("callback is required")
	}

	id := s.world.RegisterTurnListener(input.Scope, input.ActorID, input.Boundary, input.Remaining, input.Callback)
	return &RegisterTurnListenerOutput{ListenerID: id}, nil
}

func (s *service) CancelTurnListener(ctx context.Context, listenerID string) (*CancelTurnListenerOutput, error) {
	if listenerID == "" {
		return nil, dnderr.InvalidArgument("listener id is required")
	}
	return &CancelTurnListenerOutput{Cancelled: s.world.CancelTurnListener(listenerID)}, nil
}

func (s *service) UseAction(ctx context.Context, input *UseActionInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input is required")
	}

	if err := s.world.UseAction(input.ActorID, input.ActionID); err != nil {
		return err
	}
	log.Printf("Actor %s used action %s", input.ActorID, input.ActionID)

	return s.persist(ctx, input.ActorID)
}

// persist snapshots the actor's current state into the repository
func (s *service) persist(ctx context.Context, actorID string) error {
	actor, err := s.world.Actor(actorID)
	if err != nil {
		return err
	}
	scope, _ := s.world.InScope(actorID)
	return s.repository.Save(ctx, actors.Snapshot(actor, scope))
}
