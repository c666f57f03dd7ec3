package resources

import "sort"

// CooldownMap blocks actions by id. An action is blocked while its entry
// persists; entries are removed only by a matching recharge trigger.
type CooldownMap map[string]RechargeRule

// Set blocks an action until the given recharge trigger
func (c CooldownMap) Set(actionID string, rule RechargeRule) {
	c[actionID] = rule
}

// Blocked reports whether an action is on cooldown
func (c CooldownMap) Blocked(actionID string) bool {
	_, ok := c[actionID]
	return ok
}

// RechargeOn drops every entry whose rule the trigger covers and returns
// the unblocked action ids, sorted for stable logging
func (c CooldownMap) RechargeOn(trigger RechargeRule) []string {
	var cleared []string
	for actionID, rule := range c {
		if rule.IsRechargedBy(trigger) {
			cleared = append(cleared, actionID)
		}
	}
	for _, actionID := range cleared {
		delete(c, actionID)
	}
	sort.Strings(cleared)
	return cleared
}

// Clone returns an independent copy
func (c CooldownMap) Clone() CooldownMap {
	clone := make(CooldownMap, len(c))
	for actionID, rule := range c {
		clone[actionID] = rule
	}
	return clone
}
