package resources

// RechargeRule names the trigger that restores a resource or clears a
// cooldown
type RechargeRule string

const (
	RechargeTurn      RechargeRule = "turn"
	RechargeShortRest RechargeRule = "short_rest"
	RechargeLongRest  RechargeRule = "long_rest"
	RechargeNever     RechargeRule = "never"
)

// rank orders rules so broader triggers cover narrower rules.
// Turn < ShortRest < LongRest < Never; Never sorts above every trigger.
func (r RechargeRule) rank() int {
	switch r {
	case RechargeTurn:
		return 0
	case RechargeShortRest:
		return 1
	case RechargeLongRest:
		return 2
	default:
		return 3
	}
}

// IsRechargedBy reports whether the given trigger restores a resource
// governed by this rule. A trigger recharges every rule at or below its
// own rank, so a long rest also restores short-rest and turn resources.
func (r RechargeRule) IsRechargedBy(trigger RechargeRule) bool {
	if r == RechargeNever || trigger == RechargeNever {
		return false
	}
	return trigger.rank() >= r.rank()
}

// Valid reports whether the rule is one of the known values
func (r RechargeRule) Valid() bool {
	switch r {
	case RechargeTurn, RechargeShortRest, RechargeLongRest, RechargeNever:
		return true
	}
	return false
}
