package shared

import "fmt"

// SourceType categorizes what caused a modifier or advantage entry
type SourceType string

const (
	SourceTypeNone         SourceType = "none"
	SourceTypeBase         SourceType = "base"
	SourceTypeAbility      SourceType = "ability"
	SourceTypeProficiency  SourceType = "proficiency"
	SourceTypeItem         SourceType = "item"
	SourceTypeEffect       SourceType = "effect"
	SourceTypeAction       SourceType = "action"
	SourceTypeClassFeature SourceType = "class_feature"
	SourceTypeFeat         SourceType = "feat"
	SourceTypeRace         SourceType = "race"
	SourceTypeCustom       SourceType = "custom"
)

// Source is a stable, comparable key identifying what contributed a
// modifier or an advantage entry. Adding under an existing Source replaces
// the previous contribution.
type Source struct {
	Type SourceType `json:"type"`
	Key  string     `json:"key,omitempty"`
}

// NoSource is the zero contribution key
var NoSource = Source{Type: SourceTypeNone}

// AbilitySource identifies an ability score contribution
func AbilitySource(ability Ability) Source {
	return Source{Type: SourceTypeAbility, Key: string(ability)}
}

// ProficiencySource identifies a proficiency contribution
func ProficiencySource(level ProficiencyLevel) Source {
	return Source{Type: SourceTypeProficiency, Key: string(level)}
}

// ItemSource identifies an item contribution
func ItemSource(itemID string) Source {
	return Source{Type: SourceTypeItem, Key: itemID}
}

// EffectSource identifies a contribution made by an active effect
func EffectSource(effectID string) Source {
	return Source{Type: SourceTypeEffect, Key: effectID}
}

// FeatureSource identifies a class feature contribution
func FeatureSource(featureID string) Source {
	return Source{Type: SourceTypeClassFeature, Key: featureID}
}

// CustomSource identifies an ad-hoc contribution
func CustomSource(name string) Source {
	return Source{Type: SourceTypeCustom, Key: name}
}

func (s Source) String() string {
	if s.Key == "" {
		return string(s.Type)
	}
	return fmt.Sprintf("%s:%s", s.Type, s.Key)
}
