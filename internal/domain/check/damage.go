package check

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/dice"
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-rules-engine/internal/errors"
)

// DamageType classifies a damage roll
type DamageType string

const (
	DamageBludgeoning DamageType = "bludgeoning"
	DamagePiercing    DamageType = "piercing"
	DamageSlashing    DamageType = "slashing"
	DamageFire        DamageType = "fire"
	DamageCold        DamageType = "cold"
	DamageLightning   DamageType = "lightning"
	DamagePoison      DamageType = "poison"
	DamageNecrotic    DamageType = "necrotic"
	DamageRadiant     DamageType = "radiant"
	DamagePsychic     DamageType = "psychic"
	DamageForce       DamageType = "force"
	DamageThunder     DamageType = "thunder"
	DamageAcid        DamageType = "acid"
)

// DamageRoll is an open damage roll. Hooks append dice and flat
// contributions before Roll resolves it. Critical hits double the dice
// count but not the modifiers.
type DamageRoll struct {
	DiceCount int
	DiceSides int
	Type      DamageType
	Modifiers *shared.ModifierSet
	Critical  bool
}

// NewDamageRoll creates an open damage roll
func NewDamageRoll(count, sides int, damageType DamageType) *DamageRoll {
	return &DamageRoll{
		DiceCount: count,
		DiceSides: sides,
		Type:      damageType,
		Modifiers: shared.NewModifierSet(),
	}
}

// Roll resolves the damage roll. Damage never goes below zero.
func (d *DamageRoll) Roll(roller dice.Roller) (*DamageResult, error) {
	count := d.DiceCount
	if d.Critical {
		count *= 2
	}

	result, err := roller.Roll(count, d.DiceSides, 0)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll damage")
	}

	total := result.RawTotal + d.Modifiers.Total()
	if total < 0 {
		total = 0
	}

	rolls := make([]int, len(result.Rolls))
	copy(rolls, result.Rolls)

	return &DamageResult{
		Type:      d.Type,
		Rolls:     rolls,
		Breakdown: d.Modifiers.Clone(),
		Total:     total,
		Critical:  d.Critical,
	}, nil
}

// DamageResult is the immutable outcome of a resolved damage roll
type DamageResult struct {
	Type      DamageType
	Rolls     []int
	Breakdown *shared.ModifierSet
	Total     int
	Critical  bool
}
