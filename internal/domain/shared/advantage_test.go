package shared_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestAdvantageTracker_RollModeFollowsNetVotes(t *testing.T) {
	tracker := shared.NewAdvantageTracker()
	assert.Equal(t, shared.RollModeNormal, tracker.RollMode())

	tracker.Add(shared.Advantage, shared.ItemSource("item.lucky_charm"))
	assert.Equal(t, shared.RollModeAdvantage, tracker.RollMode())

	tracker.Add(shared.Disadvantage, shared.ItemSource("item.cursed_ring"))
	assert.Equal(t, shared.RollModeNormal, tracker.RollMode())

	tracker.Add(shared.Disadvantage, shared.EffectSource("effect.frightened"))
	assert.Equal(t, shared.RollModeDisadvantage, tracker.RollMode())
}

func TestAdvantageTracker_ModeDependsOnlyOnCurrentEntries(t *testing.T) {
	tracker := shared.NewAdvantageTracker()
	tracker.Add(shared.Advantage, shared.ItemSource("item.lucky_charm"))
	tracker.Add(shared.Disadvantage, shared.EffectSource("effect.frightened"))
	tracker.Remove(shared.EffectSource("effect.frightened"))

	// History of adds and removes doesn't matter, only what's left
	assert.Equal(t, shared.RollModeAdvantage, tracker.RollMode())
	assert.Len(t, tracker.Entries(), 1)
}

func TestAdvantageTracker_RemoveDropsEverySourceVote(t *testing.T) {
	tracker := shared.NewAdvantageTracker()
	source := shared.EffectSource("effect.reckless")
	tracker.Add(shared.Advantage, source)
	tracker.Add(shared.Advantage, source)
	tracker.Add(shared.Disadvantage, shared.ItemSource("item.cursed_ring"))

	tracker.Remove(source)

	assert.Equal(t, shared.RollModeDisadvantage, tracker.RollMode())
	assert.Len(t, tracker.Entries(), 1)
}
