package shared

import "math"

// Ability represents one of the six core ability scores
type Ability string

const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists every ability in display order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// AbilityModifier converts a raw ability score to its modifier,
// rounding down (score 7 is -2, not -1)
func AbilityModifier(score int) int {
	return int(math.Floor(float64(score-10) / 2))
}

// Skill represents a skill check key
type Skill string

const (
	SkillAcrobatics     Skill = "acrobatics"
	SkillAnimalHandling Skill = "animal_handling"
	SkillArcana         Skill = "arcana"
	SkillAthletics      Skill = "athletics"
	SkillDeception      Skill = "deception"
	SkillHistory        Skill = "history"
	SkillInsight        Skill = "insight"
	SkillIntimidation   Skill = "intimidation"
	SkillInvestigation  Skill = "investigation"
	SkillMedicine       Skill = "medicine"
	SkillNature         Skill = "nature"
	SkillPerception     Skill = "perception"
	SkillPerformance    Skill = "performance"
	SkillPersuasion     Skill = "persuasion"
	SkillReligion       Skill = "religion"
	SkillSleightOfHand  Skill = "sleight_of_hand"
	SkillStealth        Skill = "stealth"
	SkillSurvival       Skill = "survival"
)

// skillAbilities maps each skill to the ability that backs its checks
var skillAbilities = map[Skill]Ability{
	SkillAcrobatics:     AbilityDexterity,
	SkillAnimalHandling: AbilityWisdom,
	SkillArcana:         AbilityIntelligence,
	SkillAthletics:      AbilityStrength,
	SkillDeception:      AbilityCharisma,
	SkillHistory:        AbilityIntelligence,
	SkillInsight:        AbilityWisdom,
	SkillIntimidation:   AbilityCharisma,
	SkillInvestigation:  AbilityIntelligence,
	SkillMedicine:       AbilityWisdom,
	SkillNature:         AbilityIntelligence,
	SkillPerception:     AbilityWisdom,
	SkillPerformance:    AbilityCharisma,
	SkillPersuasion:     AbilityCharisma,
	SkillReligion:       AbilityIntelligence,
	SkillSleightOfHand:  AbilityDexterity,
	SkillStealth:        AbilityDexterity,
	SkillSurvival:       AbilityWisdom,
}

// SkillAbility returns the ability backing a skill. Unknown skills fall back
// to no ability so content typos surface in validation, not panics.
func SkillAbility(skill Skill) (Ability, bool) {
	ability, ok := skillAbilities[skill]
	return ability, ok
}
