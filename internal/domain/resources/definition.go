package resources

// Definition is the registered template a live Resource is built from
type Definition struct {
	Kind     string       `json:"kind"`
	Max      int          `json:"max,omitempty"`
	TierMax  map[int]int  `json:"tier_max,omitempty"`
	Recharge RechargeRule `json:"recharge"`
}

// Build creates a fresh resource at full capacity from the definition
func (d *Definition) Build() (*Resource, error) {
	if len(d.TierMax) > 0 {
		return NewTiered(d.Kind, d.TierMax, d.Recharge)
	}
	return New(d.Kind, d.Max, d.Recharge)
}
