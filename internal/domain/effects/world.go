package effects

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
)

// WorldReader is the read-only world view handed to check-type hooks.
// Hooks mutate exactly one target; everything else they can only inspect.
type WorldReader interface {
	// HasEffect reports whether the actor has an active instance of the
	// given effect definition
	HasEffect(actorID, effectID string) bool

	// ResourceCurrent returns the current value of an actor's resource
	ResourceCurrent(actorID, kind string) (int, bool)

	// ProficiencyBonus returns the actor's proficiency bonus
	ProficiencyBonus(actorID string) int
}

// WorldMutator is the mutable world view handed to apply and unapply
// hooks, which grant and revoke actor state.
type WorldMutator interface {
	WorldReader

	// GrantResource adds a resource to the actor, replacing any existing
	// resource of the same kind
	GrantResource(actorID string, resource *resources.Resource) error

	// RevokeResource removes a resource from the actor
	RevokeResource(actorID, kind string) error

	// SetCooldown blocks an action until the given recharge trigger
	SetCooldown(actorID, actionID string, rule resources.RechargeRule) error
}
