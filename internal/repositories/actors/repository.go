package actors

import (
	"context"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mockactors -source=repository.go

// EffectData is the stored form of one effect instance. Definitions are
// rebound from the registry on load.
type EffectData struct {
	ID           string        `json:"id"`
	DefinitionID string        `json:"definition_id"`
	Source       shared.Source `json:"source"`
	ApplierID    string        `json:"applier_id,omitempty"`
	Elapsed      int           `json:"elapsed,omitempty"`
}

// Data is the stored form of an actor snapshot
type Data struct {
	ID               string                        `json:"id"`
	Name             string                        `json:"name"`
	Scope            string                        `json:"scope,omitempty"`
	Abilities        map[shared.Ability]int        `json:"abilities,omitempty"`
	ProficiencyBonus int                           `json:"proficiency_bonus"`
	BaseArmorClass   int                           `json:"base_armor_class"`
	SkillProficiency map[shared.Skill]shared.ProficiencyLevel   `json:"skill_proficiency,omitempty"`
	SaveProficiency  map[shared.Ability]shared.ProficiencyLevel `json:"save_proficiency,omitempty"`
	Effects          []*EffectData                 `json:"effects,omitempty"`
	Resources        map[string]*resources.Resource `json:"resources,omitempty"`
	Cooldowns        map[string]resources.RechargeRule `json:"cooldowns,omitempty"`
}

// Repository stores actor snapshots
type Repository interface {
	// Get returns the snapshot for the id
	Get(ctx context.Context, id string) (*Data, error)

	// GetBatch returns snapshots for every id, failing if any is missing
	GetBatch(ctx context.Context, ids []string) ([]*Data, error)

	// Save stores a snapshot and indexes it under its scope
	Save(ctx context.Context, data *Data) error

	// Delete removes a snapshot and its scope index entry
	Delete(ctx context.Context, id string) error

	// ListScope returns the actor ids indexed under a scope
	ListScope(ctx context.Context, scope string) ([]string, error)
}
