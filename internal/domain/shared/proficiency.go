package shared

// ProficiencyLevel scales how much of the proficiency bonus a check receives
type ProficiencyLevel string

const (
	ProficiencyNone       ProficiencyLevel = "none"
	ProficiencyHalf       ProficiencyLevel = "half"
	ProficiencyProficient ProficiencyLevel = "proficient"
	ProficiencyExpertise  ProficiencyLevel = "expertise"
)

// Bonus applies the level to an actor's proficiency bonus.
// Half rounds down.
func (l ProficiencyLevel) Bonus(proficiencyBonus int) int {
	switch l {
	case ProficiencyHalf:
		return proficiencyBonus / 2
	case ProficiencyProficient:
		return proficiencyBonus
	case ProficiencyExpertise:
		return proficiencyBonus * 2
	default:
		return 0
	}
}

// TurnBoundary is the start or end instant of an actor's turn
type TurnBoundary string

const (
	TurnStart TurnBoundary = "start"
	TurnEnd   TurnBoundary = "end"
)

// RestKind distinguishes short and long rests
type RestKind string

const (
	RestShort RestKind = "short"
	RestLong  RestKind = "long"
)
