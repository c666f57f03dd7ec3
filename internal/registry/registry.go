// Package registry holds the content definitions a session is built
// from: effects, resources, and action cooldown rules, keyed by id.
package registry

import (
	"sort"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/effects"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/resources"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// Action is a registered action with its cooldown rule and optional
// resource cost
type Action struct {
	ID       string                 `json:"id"`
	Cooldown resources.RechargeRule `json:"cooldown,omitempty"`
	Cost     *ActionCost            `json:"cost,omitempty"`
}

// ActionCost is the resource expenditure an action demands
type ActionCost struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`
}

// Registry is the in-memory id to definition lookup. Populated once at
// session setup, read-only afterwards.
type Registry struct {
	effects   map[string]*effects.Definition
	resources map[string]*resources.Definition
	actions   map[string]*Action

	// grants tracks resource kinds referenced by loaded effect documents
	// so Validate can report dangling references
	grants map[string][]string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		effects:   make(map[string]*effects.Definition),
		resources: make(map[string]*resources.Definition),
		actions:   make(map[string]*Action),
		grants:    make(map[string][]string),
	}
}

// RegisterEffect adds an effect definition
func (r *Registry) RegisterEffect(def *effects.Definition) error {
	if def == nil || def.ID == "" {
		return dnderr.InvalidArgument("effect definition requires an id")
	}
	if _, exists := r.effects[def.ID]; exists {
		return dnderr.Newf(dnderr.CodeAlreadyExists, "effect %q is already registered", def.ID)
	}
	r.effects[def.ID] = def
	return nil
}

// Effect returns the effect definition for the id
func (r *Registry) Effect(id string) (*effects.Definition, error) {
	def, ok := r.effects[id]
	if !ok {
		return nil, dnderr.ContentMissing("effect", id)
	}
	return def, nil
}

// RegisterResource adds a resource definition
func (r *Registry) RegisterResource(def *resources.Definition) error {
	if def == nil || def.Kind == "" {
		return dnderr.InvalidArgument("resource definition requires a kind")
	}
	if _, exists := r.resources[def.Kind]; exists {
		return dnderr.Newf(dnderr.CodeAlreadyExists, "resource %q is already registered", def.Kind)
	}
	r.resources[def.Kind] = def
	return nil
}

// Resource returns the resource definition for the kind
func (r *Registry) Resource(kind string) (*resources.Definition, error) {
	def, ok := r.resources[kind]
	if !ok {
		return nil, dnderr.ContentMissing("resource", kind)
	}
	return def, nil
}

// RegisterAction adds an action definition
func (r *Registry) RegisterAction(action *Action) error {
	if action == nil || action.ID == "" {
		return dnderr.InvalidArgument("action requires an id")
	}
	if _, exists := r.actions[action.ID]; exists {
		return dnderr.Newf(dnderr.CodeAlreadyExists, "action %q is already registered", action.ID)
	}
	r.actions[action.ID] = action
	return nil
}

// Action returns the action for the id
func (r *Registry) Action(id string) (*Action, error) {
	action, ok := r.actions[id]
	if !ok {
		return nil, dnderr.ContentMissing("action", id)
	}
	return action, nil
}

// EffectIDs returns the registered effect ids, sorted
func (r *Registry) EffectIDs() []string {
	ids := make([]string, 0, len(r.effects))
	for id := range r.effects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate reports every dangling reference as a content missing error
// without aborting on the first one. An empty slice means the content is
// internally consistent.
func (r *Registry) Validate() []error {
	var errs []error

	ids := r.EffectIDs()
	for _, id := range ids {
		def := r.effects[id]
		if def.Replaces != "" {
			if _, ok := r.effects[def.Replaces]; !ok {
				errs = append(errs, dnderr.ContentMissing("effect", def.Replaces).
					WithMeta("referenced_by", id))
			}
		}
		for _, kind := range r.grants[id] {
			if _, ok := r.resources[kind]; !ok {
				errs = append(errs, dnderr.ContentMissing("resource", kind).
					WithMeta("referenced_by", id))
			}
		}
	}

	var actionIDs []string
	for id := range r.actions {
		actionIDs = append(actionIDs, id)
	}
	sort.Strings(actionIDs)
	for _, id := range actionIDs {
		action := r.actions[id]
		if action.Cost == nil {
			continue
		}
		if _, ok := r.resources[action.Cost.Kind]; !ok {
			errs = append(errs, dnderr.ContentMissing("resource", action.Cost.Kind).
				WithMeta("referenced_by", id))
		}
	}

	return errs
}
