package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-rules-engine/internal/config"
	"github.com/KirkDiggler/dnd-rules-engine/internal/dice"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/game"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-rules-engine/internal/registry"
	"github.com/KirkDiggler/dnd-rules-engine/internal/repositories/actors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/scheduler"
	"github.com/KirkDiggler/dnd-rules-engine/internal/services/encounter"
	"github.com/KirkDiggler/dnd-rules-engine/internal/services/rest"
	"github.com/KirkDiggler/dnd-rules-engine/internal/uuid"
)

const demoContent = `[
	{
		"id": "effect.plate_armor",
		"kind": "debuff",
		"description": "Heavy armor. Good for not dying, bad for sneaking.",
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
			{"event": "attack_roll", "bonus": 2},
			{"event": "saving_throw", "ability": "wisdom", "bonus": 2}
		]
	},
	{
		"id": "effect.raging",
		"kind": "buff",
		"duration": {"kind": "conditional"},
		"modifiers": [{"event": "on_apply", "grant_resource": "rage_uses"}]
	}
]`

const demoResources = `[
	{"kind": "rage_uses", "max": 3, "recharge": "long_rest"}
]`

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// Prefer Redis for persistence, fall back to in-memory
	var repo actors.Repository
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
		cancel()
		log.Printf("Redis not available at %s: %v", cfg.Redis.Addr, pingErr)
		log.Println("Falling back to in-memory repository")
		repo = actors.NewInMemoryRepository()
	} else {
		cancel()
		defer func() { _ = redisClient.Close() }()
		log.Printf("Using Redis at %s for persistence", cfg.Redis.Addr)
		repo = actors.NewRedisRepository(&actors.RedisRepoConfig{Client: redisClient})
	}

	// Load content
	reg := registry.New()
	if err := reg.LoadResources([]byte(demoResources)); err != nil {
		log.Fatalf("Failed to load resources: %v", err)
	}
	if err := reg.LoadEffects([]byte(demoContent)); err != nil {
		log.Fatalf("Failed to load effects: %v", err)
	}
	if err := reg.RegisterAction(&registry.Action{
		ID:       "action.rage",
		Cooldown: resources.RechargeTurn,
		Cost:     &registry.ActionCost{Kind: "rage_uses", Amount: 1},
	}); err != nil {
		log.Fatalf("Failed to register action: %v", err)
	}
	if errs := reg.Validate(); len(errs) > 0 {
		for _, validationErr := range errs {
			log.Printf("Content validation: %v", validationErr)
		}
		log.Fatal("Content validation failed")
	}

	world, err := game.NewWorld(&game.WorldConfig{
		Registry:  reg,
		Roller:    dice.NewRandomRoller(),
		Scheduler: scheduler.New(uuid.NewGoogleUUIDGenerator()),
		IDGen:     uuid.NewGoogleUUIDGenerator(),
	})
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}

	barbarian, err := game.NewActor(&game.ActorConfig{
		ID:   "barbarian",
		Name: "Grunk",
		Abilities: map[shared.Ability]int{
			shared.AbilityStrength:  16,
			shared.AbilityDexterity: 12,
			shared.AbilityWisdom:    10,
		},
		ProficiencyBonus: 2,
		BaseArmorClass:   12,
		SkillProficiency: map[shared.Skill]shared.ProficiencyLevel{
			shared.SkillAthletics: shared.ProficiencyProficient,
		},
	})
	if err != nil {
		log.Fatalf("Failed to create actor: %v", err)
	}
	if err := world.AddActor(barbarian); err != nil {
		log.Fatalf("Failed to add actor: %v", err)
	}

	encounterSvc := encounter.NewService(&encounter.ServiceConfig{
		World:      world,
		Repository: repo,
	})
	restSvc := rest.NewService(&rest.ServiceConfig{
		World:      world,
		Repository: repo,
	})

	scope := cfg.Demo.Scope
	if err := world.EnterScope(scope, "barbarian"); err != nil {
		log.Fatalf("Failed to enter scope: %v", err)
	}

	// Suit up and try to sneak
	if err := encounterSvc.ApplyEffect(ctx, &encounter.ApplyEffectInput{
		ActorID:  "barbarian",
		EffectID: "effect.plate_armor",
		Source:   shared.ItemSource("item.plate_armor"),
	}); err != nil {
		log.Fatalf("Failed to apply effect: %v", err)
	}

	if _, err := encounterSvc.PerformCheck(ctx, &encounter.PerformCheckInput{
		ActorID: "barbarian",
		Kind:    encounter.CheckKindSkill,
		Skill:   shared.SkillStealth,
		DC:      13,
	}); err != nil {
		log.Fatalf("Failed to perform check: %v", err)
	}

	// Rage for a couple of turns
	if err := encounterSvc.ApplyEffect(ctx, &encounter.ApplyEffectInput{
		ActorID:  "barbarian",
		EffectID: "effect.raging",
		Source:   shared.FeatureSource("feature.rage"),
	}); err != nil {
		log.Fatalf("Failed to apply effect: %v", err)
	}
	if err := encounterSvc.UseAction(ctx, &encounter.UseActionInput{
		ActorID:  "barbarian",
		ActionID: "action.rage",
	}); err != nil {
		log.Fatalf("Failed to use action: %v", err)
	}

	// The rage wears off at the start of the third turn from now
	if _, err := encounterSvc.RegisterTurnListener(ctx, &encounter.RegisterTurnListenerInput{
		Scope:     scope,
		ActorID:   "barbarian",
		Boundary:  shared.TurnStart,
		Remaining: 3,
		Callback: func() {
			log.Println("Rage wears off")
			if _, removeErr := encounterSvc.RemoveEffect(ctx, &encounter.RemoveEffectInput{
				ActorID:  "barbarian",
				EffectID: "effect.raging",
			}); removeErr != nil {
				log.Printf("Failed to remove effect: %v", removeErr)
			}
		},
	}); err != nil {
		log.Fatalf("Failed to register listener: %v", err)
	}

	for turn := 1; turn <= 3; turn++ {
		log.Printf("--- Turn %d ---", turn)
		if err := encounterSvc.TickTurnBoundary(ctx, &encounter.TickTurnBoundaryInput{
			Scope:    scope,
			ActorID:  "barbarian",
			Boundary: shared.TurnStart,
		}); err != nil {
			log.Fatalf("Failed to tick turn: %v", err)
		}
		if err := encounterSvc.TickTurnBoundary(ctx, &encounter.TickTurnBoundaryInput{
			Scope:    scope,
			ActorID:  "barbarian",
			Boundary: shared.TurnEnd,
		}); err != nil {
			log.Fatalf("Failed to tick turn: %v", err)
		}
	}

	// Wind down with a long rest
	if err := world.LeaveScope("barbarian"); err != nil {
		log.Fatalf("Failed to leave scope: %v", err)
	}
	if err := restSvc.StartRest(ctx, &rest.StartRestInput{
		Participants: []string{"barbarian"},
		Kind:         shared.RestLong,
	}); err != nil {
		log.Fatalf("Failed to start rest: %v", err)
	}
	if _, err := restSvc.FinishRest(ctx, &rest.FinishRestInput{
		Participants: []string{"barbarian"},
	}); err != nil {
		log.Fatalf("Failed to finish rest: %v", err)
	}

	log.Println("Demo complete")
}
