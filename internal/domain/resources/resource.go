package resources

import (
	"sort"

	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// Tier is one level of a tiered resource, e.g. spell slots per level.
// Each tier recharges independently to its own max.
type Tier struct {
	Max     int `json:"max"`
	Current int `json:"current"`
}

// Resource is a countable actor resource: rage uses, ki points, spell
// slots. Flat resources use Max/Current; tiered resources use Tiers and
// leave Max at zero.
type Resource struct {
	Kind     string        `json:"kind"`
	Max      int           `json:"max"`
	Current  int           `json:"current"`
	Recharge RechargeRule  `json:"recharge"`
	Tiers    map[int]*Tier `json:"tiers,omitempty"`
}

// New creates a flat resource at full capacity
func New(kind string, max int, recharge RechargeRule) (*Resource, error) {
	if kind == "" {
		return nil, dnderr.InvalidArgument("resource kind is required")
	}
	if max <= 0 {
		return nil, dnderr.InvalidArgument("resource max must be positive").
			WithMeta("kind", kind)
	}
	if !recharge.Valid() {
		return nil, dnderr.InvalidArgument("unknown recharge rule").
			WithMeta("kind", kind).
			WithMeta("recharge", string(recharge))
	}

	return &Resource{
		Kind:     kind,
		Max:      max,
		Current:  max,
		Recharge: recharge,
	}, nil
}

// NewTiered creates a tiered resource at full capacity. tierMax maps tier
// number to capacity.
func NewTiered(kind string, tierMax map[int]int, recharge RechargeRule) (*Resource, error) {
	if kind == "" {
		return nil, dnderr.InvalidArgument("resource kind is required")
	}
	if len(tierMax) == 0 {
		return nil, dnderr.InvalidArgument("tiered resource needs at least one tier").
			WithMeta("kind", kind)
	}
	if !recharge.Valid() {
		return nil, dnderr.InvalidArgument("unknown recharge rule").
			WithMeta("kind", kind).
			WithMeta("recharge", string(recharge))
	}

	tiers := make(map[int]*Tier, len(tierMax))
	for tier, max := range tierMax {
		if max <= 0 {
			return nil, dnderr.InvalidArgument("tier max must be positive").
				WithMeta("kind", kind).
				WithMeta("tier", tier)
		}
		tiers[tier] = &Tier{Max: max, Current: max}
	}

	return &Resource{
		Kind:     kind,
		Recharge: recharge,
		Tiers:    tiers,
	}, nil
}

// Spend consumes amount from a flat resource. On failure the resource is
// untouched and a typed InsufficientResource error reports what was
// needed and available.
func (r *Resource) Spend(amount int) error {
	if amount <= 0 {
		return dnderr.InvalidArgument("spend amount must be positive").
			WithMeta("kind", r.Kind)
	}
	if r.Current < amount {
		return dnderr.InsufficientResource(r.Kind, amount, r.Current)
	}
	r.Current -= amount
	return nil
}

// SpendTier consumes amount from one tier of a tiered resource
func (r *Resource) SpendTier(tier, amount int) error {
	if amount <= 0 {
		return dnderr.InvalidArgument("spend amount must be positive").
			WithMeta("kind", r.Kind)
	}
	t, ok := r.Tiers[tier]
	if !ok {
		return dnderr.NotFoundf("resource '%s' has no tier %d", r.Kind, tier)
	}
	if t.Current < amount {
		return dnderr.InsufficientResource(r.Kind, amount, t.Current)
	}
	t.Current -= amount
	return nil
}

// Restore adds amount back to a flat resource, capped at max
func (r *Resource) Restore(amount int) {
	if amount <= 0 {
		return
	}
	r.Current += amount
	if r.Current > r.Max {
		r.Current = r.Max
	}
}

// RechargeOn resets the resource to full if the trigger covers its rule.
// Tiered resources reset every tier independently. Reports whether
// anything changed.
func (r *Resource) RechargeOn(trigger RechargeRule) bool {
	if !r.Recharge.IsRechargedBy(trigger) {
		return false
	}

	changed := false
	if r.Tiers != nil {
		for _, t := range r.Tiers {
			if t.Current != t.Max {
				t.Current = t.Max
				changed = true
			}
		}
		return changed
	}

	if r.Current != r.Max {
		r.Current = r.Max
		changed = true
	}
	return changed
}

// Clone returns an independent copy
func (r *Resource) Clone() *Resource {
	clone := &Resource{
		Kind:     r.Kind,
		Max:      r.Max,
		Current:  r.Current,
		Recharge: r.Recharge,
	}
	if r.Tiers != nil {
		clone.Tiers = make(map[int]*Tier, len(r.Tiers))
		for tier, t := range r.Tiers {
			clone.Tiers[tier] = &Tier{Max: t.Max, Current: t.Current}
		}
	}
	return clone
}

// Map holds an actor's resources by kind
type Map map[string]*Resource

// Add inserts a resource, replacing any existing resource of the same kind
func (m Map) Add(resource *Resource) {
	m[resource.Kind] = resource
}

// Get returns the resource of the given kind
func (m Map) Get(kind string) (*Resource, bool) {
	resource, ok := m[kind]
	return resource, ok
}

// Remove deletes the resource of the given kind
func (m Map) Remove(kind string) {
	delete(m, kind)
}

// RechargeOn issues the trigger to every resource and returns the kinds
// that changed, sorted for stable logging
func (m Map) RechargeOn(trigger RechargeRule) []string {
	var recharged []string
	for kind, resource := range m {
		if resource.RechargeOn(trigger) {
			recharged = append(recharged, kind)
		}
	}
	sort.Strings(recharged)
	return recharged
}

// Clone returns an independent copy
func (m Map) Clone() Map {
	clone := make(Map, len(m))
	for kind, resource := range m {
		clone[kind] = resource.Clone()
	}
	return clone
}
