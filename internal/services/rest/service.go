package rest

//go:generate mockgen -destination=mock/mock_service.go -package=mockrest -source=service.go

import (
	"context"
	"log"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/game"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/repositories/actors"
)

// Repository is an alias for the actor repository interface
type Repository = actors.Repository

// Service drives rests and recharge triggers
type Service interface {
	// StartRest puts the participants into a rest
	StartRest(ctx context.Context, input *StartRestInput) error

	// FinishRest completes the participants' rest and recharges them
	FinishRest(ctx context.Context, input *FinishRestInput) (*FinishRestOutput, error)

	// Recharge issues a recharge trigger directly to one actor
	Recharge(ctx context.Context, input *RechargeInput) (*RechargeOutput, error)
}

// StartRestInput contains data for starting a rest
type StartRestInput struct {
	Participants []string
	Kind         shared.RestKind
}

// FinishRestInput contains data for finishing a rest
type FinishRestInput struct {
	Participants []string
}

// FinishRestOutput reports the completed rest
type FinishRestOutput struct {
	Kind shared.RestKind
}

// RechargeInput contains data for a direct recharge trigger
type RechargeInput struct {
	ActorID string
	Trigger resources.RechargeRule
}

// RechargeOutput reports what the trigger changed
type RechargeOutput struct {
	RechargedResources []string
	ClearedCooldowns   []string
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

// NewService creates a new rest service
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

func (s *service) StartRest(ctx context.Context, input *StartRestInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input is required")
	}

	if err := s.world.StartRest(input.Participants, input.Kind); err != nil {
		return err
	}
	log.Printf("Started %s rest for %d participants", input.Kind, len(input.Participants))
	return nil
}

func (s *service) FinishRest(ctx context.Context, input *FinishRestInput) (*FinishRestOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	kind, err := s.world.FinishRest(input.Participants)
	if err != nil {
		return nil, err
	}
	log.Printf("Finished %s rest for %d participants", kind, len(input.Participants))

	for _, actorID := range input.Participants {
		if err := s.persist(ctx, actorID); err != nil {
			return nil, err
		}
	}
	return &FinishRestOutput{Kind: kind}, nil
}

func (s *service) Recharge(ctx context.Context, input *RechargeInput) (*RechargeOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	recharged, cleared, err := s.world.Recharge(input.ActorID, input.Trigger)
	if err != nil {
		return nil, err
	}
	if len(recharged) > 0 || len(cleared) > 0 {
		log.Printf("Recharge %s for actor %s: resources %v, cooldowns %v",
			input.Trigger, input.ActorID, recharged, cleared)
		if err := s.persist(ctx, input.ActorID); err != nil {
			return nil, err
		}
	}

	return &RechargeOutput{
		RechargedResources: recharged,
		ClearedCooldowns:   cleared,
	}, nil
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
